package remote

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tymbaca/tour-go/tour"
)

var square = []tour.Point{
	{Name: "A", X: 0, Y: 0},
	{Name: "B", X: 0, Y: 1},
	{Name: "C", X: 3, Y: 0},
	{Name: "D", X: 3, Y: 1},
}

// startWorker serves w on a loopback port until the test ends.
func startWorker(t *testing.T, w *Worker) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, lis, w)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return lis.Addr().String()
}

func TestClusterSolve(t *testing.T) {
	addrs := []string{startWorker(t, NewWorker()), startWorker(t, NewWorker())}

	res, err := tour.New(NewCluster(addrs), nil).Solve(context.Background(), square)
	require.NoError(t, err)

	var names []string
	for _, p := range res.Tour {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"A", "A", "B", "C", "D", "A"}, names)
	require.Equal(t, 2.0, res.Distance)
}

func TestClusterMatchesLocal(t *testing.T) {
	addrs := []string{startWorker(t, NewWorker()), startWorker(t, NewWorker()), startWorker(t, NewWorker())}

	points := make([]tour.Point, 0, 30)
	for i := range 30 {
		points = append(points, tour.Point{Name: string(rune('a' + i%26)), X: float64(i*i%17) / 3, Y: float64(i*7%11) * 1.5})
	}

	want, err := tour.NewLocalCluster(3).Run(context.Background(), points)
	require.NoError(t, err)

	got, err := NewCluster(addrs).Run(context.Background(), points)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestClusterWorkerPanics(t *testing.T) {
	broken := &Worker{workFn: func(context.Context, []tour.Point, int, int) (tour.PartialResult, error) {
		panic("boom")
	}}
	addrs := []string{startWorker(t, NewWorker()), startWorker(t, broken)}

	_, err := tour.New(NewCluster(addrs), nil).Solve(context.Background(), square)
	require.ErrorIs(t, err, tour.ErrWorkerFailure)
	require.ErrorContains(t, err, "rank 1")
	require.ErrorContains(t, err, "boom")
}

func TestClusterUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	dead := lis.Addr().String()
	require.NoError(t, lis.Close())

	_, err = NewCluster([]string{startWorker(t, NewWorker()), dead}).Run(context.Background(), square)
	require.ErrorIs(t, err, tour.ErrWorkerFailure)
}

func TestClusterTooManyWorkers(t *testing.T) {
	addrs := []string{startWorker(t, NewWorker()), startWorker(t, NewWorker())}

	_, err := tour.New(NewCluster(addrs), nil).Solve(context.Background(), square[:1])
	require.ErrorIs(t, err, tour.ErrConfiguration)
}
