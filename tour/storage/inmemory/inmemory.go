package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/tour"
)

type Storage struct {
	mu   sync.RWMutex
	data map[string]tour.Result
}

func New() *Storage {
	return &Storage{
		data: make(map[string]tour.Result),
	}
}

func (st *Storage) Get(ctx context.Context, key string) (tour.Result, bool, error) {
	_, span := tracer.Start(ctx, caller.Name())
	defer span.End()

	st.mu.RLock()
	defer st.mu.RUnlock()

	res, ok := st.data[key]
	if !ok {
		return tour.Result{}, false, nil
	}

	return clone(res), true, nil
}

func (st *Storage) Put(ctx context.Context, key string, res tour.Result) error {
	_, span := tracer.Start(ctx, caller.Name())
	defer span.End()

	st.mu.Lock()
	defer st.mu.Unlock()

	st.data[key] = clone(res)

	return nil
}

// clone keeps callers from mutating stored tours.
func clone(res tour.Result) tour.Result {
	return tour.Result{Tour: slices.Clone(res.Tour), Distance: res.Distance}
}
