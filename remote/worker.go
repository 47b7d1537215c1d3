// Package remote runs tour workers as separate processes reached over
// net/rpc. Every worker gets the full point set and works out its own
// partition from its rank.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"

	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/tour"
)

const serviceName = "Worker"

type SolveArgs struct {
	Points []tour.Point
	Rank   int
	Size   int
	Trace  map[string]string
}

type SolveReply struct {
	Tour     []int
	Distance float64
}

// Worker is the RPC service a worker process exposes.
type Worker struct {
	workFn tour.WorkFunc
}

func NewWorker() *Worker {
	return &Worker{workFn: tour.Work}
}

func (w *Worker) Solve(args SolveArgs, reply *SolveReply) (err error) {
	ctx := tracer.FromMap(context.Background(), args.Trace)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rank %d panicked: %v", args.Rank, r)
		}
	}()

	slog.Info("worker: got broadcast", "rank", args.Rank, "size", args.Size, "points", len(args.Points))

	partial, err := w.workFn(ctx, args.Points, args.Rank, args.Size)
	if err != nil {
		return err
	}

	reply.Tour = partial.Tour
	reply.Distance = partial.Distance

	return nil
}

// Serve answers Worker.Solve calls on lis until ctx is done.
func Serve(ctx context.Context, lis net.Listener) error {
	return serve(ctx, lis, NewWorker())
}

func serve(ctx context.Context, lis net.Listener, w *Worker) error {
	server := rpc.NewServer()
	if err := server.RegisterName(serviceName, w); err != nil {
		return fmt.Errorf("register rpc service: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		_ = lis.Close()
	})
	defer stop()

	slog.Info("worker: serving", "addr", lis.Addr().String())

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		go server.ServeConn(conn)
	}
}
