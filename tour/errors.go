package tour

import "errors"

var (
	// ErrInput is returned for an empty point set or non-finite coordinates.
	ErrInput = errors.New("invalid input")

	// ErrConfiguration is returned for a worker count that is not positive
	// or exceeds the number of points.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrWorkerFailure is returned when a worker crashed, a report is missing
	// or malformed, or the collective itself failed.
	ErrWorkerFailure = errors.New("worker failure")
)
