package tour

import (
	"context"
	"log"
	"sync"

	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// rootRank is the rank that owns the point set and gathers the reports.
const rootRank = 0

type transport[T any] interface {
	// Recv receives the data sent to specified rank. Blocks until someone
	// calls Send with corresponding rank, or until all senders called Close.
	Recv(ctx context.Context, rank int) (T, bool)

	// Send sends the data to specified rank. Returns false if ctx was done
	// before the data was taken.
	Send(ctx context.Context, rank int, data T) bool

	// Close is called by every sender once it sent all its data. Sender must
	// not use transport after calling Close.
	Close()
}

type chanTransport[T any] struct {
	sendersWg *sync.WaitGroup
	peers     map[int]chan T
}

// newTransport connects senders to receivers. A broadcast is one sender and
// many receivers, a gather is many senders and one receiver.
func newTransport[T any](senders, receivers int) transport[T] {
	peers := make(map[int]chan T, receivers)

	for rank := range receivers {
		peers[rank] = make(chan T, 1)
	}

	sendersWg := &sync.WaitGroup{}
	sendersWg.Add(senders)

	go func() {
		sendersWg.Wait()
		for _, ch := range peers {
			close(ch)
		}
	}()

	return &chanTransport[T]{
		sendersWg: sendersWg,
		peers:     peers,
	}
}

func (t *chanTransport[T]) Recv(ctx context.Context, rank int) (data T, open bool) {
	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(attribute.Int("rank", rank)))
	defer span.End()

	ch, ok := t.peers[rank]
	if !ok {
		log.Panicf("recv: no peer for rank %d", rank)
	}

	select {
	case <-ctx.Done():
		return data, false
	case data, open = <-ch:
		return data, open
	}
}

func (t *chanTransport[T]) Send(ctx context.Context, rank int, data T) bool {
	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(attribute.Int("rank", rank)))
	defer span.End()

	ch, ok := t.peers[rank]
	if !ok {
		log.Panicf("send: no peer for rank %d", rank)
	}

	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}

func (t *chanTransport[T]) Close() {
	t.sendersWg.Done()
}
