package tour

// NearestNeighbor walks the points greedily starting at index 0, always
// moving to the closest point not visited yet. On equal distances the
// lowest index wins.
//
// The returned tour holds local indices and always starts with 0. Its
// distance is the sum of the len(points)-1 walked edges, the walk is not
// closed.
func NearestNeighbor(points []Point) PartialResult {
	switch len(points) {
	case 0:
		return PartialResult{Tour: []int{}}
	case 1:
		return PartialResult{Tour: []int{0}}
	}

	visited := make([]bool, len(points))
	tour := make([]int, 0, len(points))

	current := 0
	visited[current] = true
	tour = append(tour, current)

	var total float64
	for len(tour) < len(points) {
		closest := -1
		var minDist float64

		for idx := range points {
			if visited[idx] {
				continue
			}

			dist := Distance(points[current], points[idx])
			if closest == -1 || dist < minDist {
				minDist = dist
				closest = idx
			}
		}

		visited[closest] = true
		tour = append(tour, closest)
		total += minDist
		current = closest
	}

	return PartialResult{Tour: tour, Distance: total}
}
