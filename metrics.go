package replitdb

import (
	"context"
	"time"
)

// Op is the name of a database operation used in metrics.
type Op string

// Op values.
const (
	OpDelete Op = "delete"
	OpEmpty  Op = "empty"
	OpGet    Op = "get"
	OpGetAll Op = "get_all"
	OpList   Op = "list"
	OpSet    Op = "set"
)

// Metrics is an interface that is used for the collection of the database
// client statistics.
type Metrics interface {
	// ObserveOperation records a finished operation.  err is the error the
	// operation has returned, if any.
	ObserveOperation(ctx context.Context, op Op, dur time.Duration, err error)

	// IncrementLookups increments the number of successful Get calls.  hit is
	// true if the key has been found.
	IncrementLookups(ctx context.Context, hit bool)
}

// EmptyMetrics is the implementation of the [Metrics] interface that does
// nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// ObserveOperation implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) ObserveOperation(_ context.Context, _ Op, _ time.Duration, _ error) {}

// IncrementLookups implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) IncrementLookups(_ context.Context, _ bool) {}
