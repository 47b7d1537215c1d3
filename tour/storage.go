package tour

import "context"

// Storage keeps finished results by run fingerprint, so an identical run
// can be answered without dispatching any work.
type Storage interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Put(ctx context.Context, key string, res Result) error
}
