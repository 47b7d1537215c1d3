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

// WorkFunc computes the partial result of one rank from the full point set.
type WorkFunc func(ctx context.Context, points []Point, rank, size int) (PartialResult, error)

// Work derives the partition of rank from the broadcast point set and walks
// it with NearestNeighbor.
func Work(ctx context.Context, points []Point, rank, size int) (PartialResult, error) {
	_, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(
		attribute.Int("rank", rank),
		attribute.Int("size", size),
	))
	defer span.End()

	if size <= 0 || rank < 0 || rank >= size {
		return PartialResult{}, fmt.Errorf("%w: rank %d out of %d workers", ErrConfiguration, rank, size)
	}

	part := PartitionOf(rank, size, len(points))
	partial := NearestNeighbor(points[part.Lo:part.Hi])
	GlobalStats.Visited.Add(uint64(part.Len()))

	slog.Info("worker: partition done", "rank", rank, "lo", part.Lo, "hi", part.Hi, "distance", partial.Distance)

	return partial, nil
}

func forkWorker(ctx context.Context, workFn WorkFunc, rank int, in transport[job], out transport[report]) {
	w := &worker{
		rank:   rank,
		workFn: workFn,
		in:     in,
		out:    out,
	}

	go w.run(ctx)
}

type worker struct {
	rank   int
	workFn WorkFunc

	in  transport[job]
	out transport[report]
}

func (w *worker) run(ctx context.Context) {
	defer w.out.Close()

	slog.Debug("worker: receiving...", "rank", w.rank)
	j, open := w.in.Recv(ctx, w.rank)
	if !open {
		slog.Warn("worker: broadcast closed before any data", "rank", w.rank)
		return
	}

	rep := w.compute(j)

	slog.Debug("worker: sending report...", "rank", w.rank)
	if !w.out.Send(ctx, rootRank, rep) {
		slog.Warn("worker: report not delivered", "rank", w.rank, "err", ctx.Err())
	}
}

// compute turns a panic of workFn into a failed report, the same way a
// crashed process shows up as a failed collective.
func (w *worker) compute(j job) (rep report) {
	rep.rank = w.rank

	defer func() {
		if r := recover(); r != nil {
			rep.err = fmt.Errorf("rank %d panicked: %v", w.rank, r)
		}
	}()

	rep.partial, rep.err = w.workFn(j.ctx, j.points, w.rank, j.size)

	return rep
}
