package tour

import "context"

// Point is a named location on the plane. Index 0 of a point set is the
// start and end of the whole tour.
type Point struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Partition is the half-open index range [Lo, Hi) owned by one rank.
type Partition struct {
	Rank int
	Lo   int
	Hi   int
}

func (p Partition) Len() int {
	return p.Hi - p.Lo
}

// PartialResult is what a single worker reports back: a walk over its
// partition in local indices and the summed length of the walked edges.
type PartialResult struct {
	Tour     []int
	Distance float64
}

// Result is the combined tour. Tour starts and ends with the start point.
//
// Distance is the sum of the partial distances only, the edges between
// partitions and the closing edge are not counted. Use ClosedLength to get
// the real length of Tour.
type Result struct {
	Tour     []Point
	Distance float64
}

// Cluster is a fixed group of workers. Run broadcasts the whole point set
// to every rank and blocks until all of them reported. Reports are
// returned in rank order.
type Cluster interface {
	Size() int
	Run(ctx context.Context, points []Point) ([]PartialResult, error)
}

type job struct {
	ctx    context.Context
	points []Point
	size   int
}

type report struct {
	rank    int
	partial PartialResult
	err     error
}
