package tour

import "math"

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ClosedLength returns the length of the tour as it is walked, including
// the edges between partitions and the edge back to the start.
func (r Result) ClosedLength() float64 {
	var total float64
	for i := 1; i < len(r.Tour); i++ {
		total += Distance(r.Tour[i-1], r.Tour[i])
	}

	return total
}
