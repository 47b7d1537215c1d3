package tour

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LocalCluster runs every rank as a goroutine. Ranks talk to the root only
// through the broadcast and gather transports.
type LocalCluster struct {
	size   int
	workFn WorkFunc
}

func NewLocalCluster(size int) *LocalCluster {
	return &LocalCluster{
		size:   size,
		workFn: Work,
	}
}

func (c *LocalCluster) Size() int {
	return c.size
}

// Run blocks until every rank reported or ctx is done.
func (c *LocalCluster) Run(ctx context.Context, points []Point) ([]PartialResult, error) {
	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(attribute.Int("size", c.size)))
	defer span.End()

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrConfiguration, c.size)
	}

	bcast := newTransport[job](1, c.size)
	gather := newTransport[report](c.size, 1)

	for rank := range c.size {
		forkWorker(ctx, c.workFn, rank, bcast, gather)
	}

	// broadcast phase
	j := job{ctx: ctx, points: points, size: c.size}
	for rank := range c.size {
		if bcast.Send(ctx, rank, j) {
			GlobalStats.Broadcast.Add(1)
		}
	}
	bcast.Close()

	// gather phase
	partials := make([]PartialResult, c.size)
	reported := make([]bool, c.size)
	failures := make([]error, c.size)

	for {
		rep, open := gather.Recv(ctx, rootRank)
		if !open {
			break
		}
		GlobalStats.Gathered.Add(1)
		slog.Debug("cluster: got report", "rank", rep.rank, "err", rep.err)

		reported[rep.rank] = true
		if rep.err != nil {
			failures[rep.rank] = rep.err
			continue
		}
		partials[rep.rank] = rep.partial
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: gather aborted: %w", ErrWorkerFailure, err)
	}

	for rank := range c.size {
		if failures[rank] != nil {
			return nil, fmt.Errorf("%w: %v", ErrWorkerFailure, failures[rank])
		}
		if !reported[rank] {
			return nil, fmt.Errorf("%w: no report from rank %d", ErrWorkerFailure, rank)
		}
	}

	return partials, nil
}
