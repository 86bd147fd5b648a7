package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/AdguardTeam/golibs/container"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/replitdb"
	"github.com/prometheus/client_golang/prometheus"
)

// DBClient is the Prometheus-based implementation of the [replitdb.Metrics]
// interface.
type DBClient struct {
	// opDuration is a histogram with the durations of database operations.
	opDuration *prometheus.HistogramVec

	// errors is a counter of failed database operations.
	errors *prometheus.CounterVec

	// hits is a counter of Get calls that have found the key.
	hits prometheus.Counter

	// misses is a counter of Get calls that haven't found the key.
	misses prometheus.Counter
}

// NewDBClient registers the database client metrics in reg and returns a
// properly initialized [*DBClient].
func NewDBClient(namespace string, reg prometheus.Registerer) (m *DBClient, err error) {
	const (
		opDuration = "op_duration_seconds"
		opErrors   = "op_errors_total"
		lookups    = "lookups_total"
	)

	lookupsVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      lookups,
		Subsystem: subsystemClient,
		Namespace: namespace,
		Help: "Total number of successful key lookups. " +
			"Label hit is the lookup result, either 1 for hit or 0 for miss.",
	}, []string{"hit"})

	m = &DBClient{
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:      opDuration,
			Subsystem: subsystemClient,
			Namespace: namespace,
			Help: "Duration of a single database operation. " +
				"Label op is the corresponding operation name.",
			Buckets: []float64{0.001, 0.010, 0.050, 0.100, 0.500, 1, 5, 30},
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:      opErrors,
			Subsystem: subsystemClient,
			Namespace: namespace,
			Help: "Total number of failed database operations. " +
				"Label op is the corresponding operation name.",
		}, []string{"op"}),
		hits:   lookupsVec.WithLabelValues(BoolString(true)),
		misses: lookupsVec.WithLabelValues(BoolString(false)),
	}

	var errs []error
	collectors := container.KeyValues[string, prometheus.Collector]{{
		Key:   opDuration,
		Value: m.opDuration,
	}, {
		Key:   opErrors,
		Value: m.errors,
	}, {
		Key:   lookups,
		Value: lookupsVec,
	}}

	for _, c := range collectors {
		err = reg.Register(c.Value)
		if err != nil {
			errs = append(errs, fmt.Errorf("registering metrics %q: %w", c.Key, err))
		}
	}

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	return m, nil
}

// type check
var _ replitdb.Metrics = (*DBClient)(nil)

// ObserveOperation implements the [replitdb.Metrics] interface for *DBClient.
func (m *DBClient) ObserveOperation(
	_ context.Context,
	op replitdb.Op,
	dur time.Duration,
	err error,
) {
	m.opDuration.WithLabelValues(string(op)).Observe(dur.Seconds())

	if err != nil {
		m.errors.WithLabelValues(string(op)).Inc()
	}
}

// IncrementLookups implements the [replitdb.Metrics] interface for *DBClient.
func (m *DBClient) IncrementLookups(_ context.Context, hit bool) {
	IncrementCond(hit, m.hits, m.misses)
}
