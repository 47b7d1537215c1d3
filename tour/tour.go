package tour

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Solver is the coordinator of a run: it validates the input, hands the
// point set to the cluster and combines the gathered reports.
type Solver struct {
	cluster Cluster
	storage Storage
}

// New creates a solver over cluster. storage may be nil.
func New(cluster Cluster, storage Storage) *Solver {
	return &Solver{
		cluster: cluster,
		storage: storage,
	}
}

// Solve blocks until every worker reported. Errors wrap exactly one of
// ErrInput, ErrConfiguration or ErrWorkerFailure, except for storage
// failures which are returned as is.
func (s *Solver) Solve(ctx context.Context, points []Point) (Result, error) {
	runID := uuid.NewString()
	size := s.cluster.Size()

	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(
		attribute.String("run", runID),
		attribute.Int("points", len(points)),
		attribute.Int("size", size),
	))
	defer span.End()

	log := slog.With("run", runID)

	if err := Validate(points); err != nil {
		return Result{}, err
	}

	parts, err := Partitions(len(points), size)
	if err != nil {
		return Result{}, err
	}

	var key string
	if s.storage != nil {
		key = Fingerprint(points, size)

		res, ok, err := s.storage.Get(ctx, key)
		if err != nil {
			return Result{}, fmt.Errorf("lookup cached result: %w", err)
		}
		if ok {
			GlobalStats.CacheHits.Add(1)
			log.Info("solver: cached result", "key", key)
			return res, nil
		}
	}

	log.Info("solver: dispatching", "points", len(points), "workers", size)

	partials, err := s.cluster.Run(ctx, points)
	if err != nil {
		if !errors.Is(err, ErrWorkerFailure) {
			err = fmt.Errorf("%w: %v", ErrWorkerFailure, err)
		}
		return Result{}, err
	}

	res, err := Combine(points, parts, partials)
	if err != nil {
		return Result{}, err
	}

	log.Info("solver: combined", "distance", res.Distance, "closed_length", res.ClosedLength())

	if s.storage != nil {
		if err := s.storage.Put(ctx, key, res); err != nil {
			return Result{}, fmt.Errorf("store result: %w", err)
		}
	}

	return res, nil
}
