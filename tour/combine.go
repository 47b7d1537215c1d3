package tour

import "fmt"

// Combine maps the partial tours back to points, concatenates them in rank
// order and closes the cycle at points[0].
//
// The start point is always appended. With more than one partition it is
// prepended as well, so rank 0's own start shows up twice at the head of the
// tour. A single partition gives the same tour as walking the whole set at
// once.
//
// Distance is the plain sum of the partial distances: the edges joining
// partitions and the closing edge are left out. See Result.ClosedLength.
func Combine(points []Point, parts []Partition, partials []PartialResult) (Result, error) {
	if len(points) == 0 {
		return Result{}, fmt.Errorf("%w: no points", ErrInput)
	}
	if len(parts) != len(partials) {
		return Result{}, fmt.Errorf("%w: %d reports for %d partitions", ErrWorkerFailure, len(partials), len(parts))
	}

	start := points[0]
	tour := make([]Point, 0, len(points)+2)
	if len(parts) > 1 {
		tour = append(tour, start)
	}

	var distance float64
	for rank, part := range parts {
		partial := partials[rank]
		if len(partial.Tour) != part.Len() {
			return Result{}, fmt.Errorf("%w: rank %d walked %d points of %d", ErrWorkerFailure, rank, len(partial.Tour), part.Len())
		}

		seen := make([]bool, part.Len())
		for _, local := range partial.Tour {
			if local < 0 || local >= part.Len() || seen[local] {
				return Result{}, fmt.Errorf("%w: rank %d reported bad index %d", ErrWorkerFailure, rank, local)
			}
			seen[local] = true
			tour = append(tour, points[part.Lo+local])
		}

		distance += partial.Distance
	}

	tour = append(tour, start)

	return Result{Tour: tour, Distance: distance}, nil
}
