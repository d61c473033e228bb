package maxent

import "runtime"

const DefaultBatchSize = 4096

// Options control how a projection run is executed. Zero or negative values
// fall back to the defaults.
type Options struct {
	// Workers caps the number of goroutines evaluating location batches
	// concurrently.
	Workers int

	// BatchSize is the number of locations evaluated per batch.
	BatchSize int
}

func NewDefaultOptions() *Options {
	return &Options{
		Workers:   runtime.GOMAXPROCS(0),
		BatchSize: DefaultBatchSize,
	}
}
