// Package metrics contains definitions of the prometheus metrics that we use in
// the Replit database client and the command-line tool.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the default namespace of all metrics of this module.
const Namespace = "replitdb"

// constants with the subsystem names that we use in our prometheus metrics.
const (
	subsystemApplication = "app"
	subsystemClient      = "client"
)

// SetUpGauge registers a gauge with build information in reg and sets it to 1.
func SetUpGauge(
	reg prometheus.Registerer,
	namespace string,
	version string,
	branch string,
	commitTime string,
	revision string,
	goVersion string,
) (err error) {
	const upGaugeName = "up"

	upGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      upGaugeName,
		Namespace: namespace,
		Subsystem: subsystemApplication,
		Help: `A metric with a constant '1' value labeled by ` +
			`version and goversion from which the program was built.`,
		ConstLabels: prometheus.Labels{
			"branch":     branch,
			"committime": commitTime,
			"goversion":  goVersion,
			"revision":   revision,
			"version":    version,
		},
	})

	err = reg.Register(upGauge)
	if err != nil {
		return fmt.Errorf("registering metrics %q: %w", upGaugeName, err)
	}

	upGauge.Set(1)

	return nil
}

// BoolString returns "1" if cond is true and "0" otherwise.
func BoolString(cond bool) (s string) {
	if cond {
		return "1"
	}

	return "0"
}

// IncrementCond increments trueCounter if cond is true and falseCounter
// otherwise.
func IncrementCond(cond bool, trueCounter, falseCounter prometheus.Counter) {
	if cond {
		trueCounter.Inc()
	} else {
		falseCounter.Inc()
	}
}
