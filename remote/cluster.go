package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"sync"

	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/tour"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Cluster is a fixed list of worker processes. The rank of a worker is its
// position in the list.
type Cluster struct {
	addrs  []string
	dialer net.Dialer
}

func NewCluster(addrs []string) *Cluster {
	return &Cluster{addrs: addrs}
}

func (c *Cluster) Size() int {
	return len(c.addrs)
}

// Run sends the full point set to every worker and waits for all replies.
// A single failed worker fails the run.
func (c *Cluster) Run(ctx context.Context, points []tour.Point) ([]tour.PartialResult, error) {
	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(attribute.Int("size", len(c.addrs))))
	defer span.End()

	carrier := tracer.ToMap(ctx)

	partials := make([]tour.PartialResult, len(c.addrs))
	errs := make([]error, len(c.addrs))

	var wg sync.WaitGroup
	for rank, addr := range c.addrs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			args := SolveArgs{
				Points: points,
				Rank:   rank,
				Size:   len(c.addrs),
				Trace:  carrier,
			}
			partials[rank], errs[rank] = c.call(ctx, addr, args)
		}()
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: rank %d at %s: %w", tour.ErrWorkerFailure, rank, c.addrs[rank], err)
		}
	}

	return partials, nil
}

func (c *Cluster) call(ctx context.Context, addr string, args SolveArgs) (tour.PartialResult, error) {
	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(
		attribute.Int("rank", args.Rank),
		attribute.String("addr", addr),
	))
	defer span.End()

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return tour.PartialResult{}, fmt.Errorf("dial: %w", err)
	}

	client := rpc.NewClient(conn)
	defer client.Close()

	var reply SolveReply
	call := client.Go(serviceName+".Solve", args, &reply, make(chan *rpc.Call, 1))
	tour.GlobalStats.Broadcast.Add(1)

	select {
	case <-ctx.Done():
		return tour.PartialResult{}, ctx.Err()
	case <-call.Done:
	}
	if call.Error != nil {
		return tour.PartialResult{}, call.Error
	}

	tour.GlobalStats.Gathered.Add(1)
	slog.Debug("cluster: got reply", "rank", args.Rank, "addr", addr, "distance", reply.Distance)

	return tour.PartialResult{Tour: reply.Tour, Distance: reply.Distance}, nil
}
