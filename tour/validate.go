package tour

import (
	"fmt"
	"math"
)

// Validate rejects point sets the solver cannot walk.
func Validate(points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: no points", ErrInput)
	}

	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%w: point %d (%q) has non-finite coordinates", ErrInput, i, p.Name)
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
