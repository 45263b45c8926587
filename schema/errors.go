package schema

import "errors"

// Error kinds surfaced by the loader and the engine. Callers are expected to
// test with errors.Is; lower layers wrap these with context via %w.
var (
	// ErrMissingColumn means the input dataset lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidDate means a purchase date could not be parsed.
	ErrInvalidDate = errors.New("invalid purchase date")

	// ErrInvalidBenchmark means a manual interval was not strictly positive
	// or a quantile parameter fell outside (0, 1).
	ErrInvalidBenchmark = errors.New("invalid benchmark")

	// ErrUnknownProduct means the requested product has no profiles.
	ErrUnknownProduct = errors.New("unknown product")
)
