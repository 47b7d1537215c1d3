package tour

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

var square = []Point{
	{Name: "A", X: 0, Y: 0},
	{Name: "B", X: 0, Y: 1},
	{Name: "C", X: 3, Y: 0},
	{Name: "D", X: 3, Y: 1},
}

func TestDistance(t *testing.T) {
	require.Equal(t, 5.0, Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}))
	require.Equal(t, 5.0, Distance(Point{X: 3, Y: 4}, Point{X: 0, Y: 0}))
	require.Equal(t, 0.0, Distance(Point{X: -2, Y: 7}, Point{X: -2, Y: 7}))
}

func TestNearestNeighbor(t *testing.T) {
	partial := NearestNeighbor(square)

	require.Equal(t, []int{0, 1, 3, 2}, partial.Tour)
	require.Equal(t, 5.0, partial.Distance)
}

func TestNearestNeighborSmall(t *testing.T) {
	empty := NearestNeighbor(nil)
	require.Empty(t, empty.Tour)
	require.Zero(t, empty.Distance)

	single := NearestNeighbor(square[:1])
	require.Equal(t, []int{0}, single.Tour)
	require.Zero(t, single.Distance)

	pair := NearestNeighbor(square[:2])
	require.Equal(t, []int{0, 1}, pair.Tour)
	require.Equal(t, 1.0, pair.Distance)
}

func TestNearestNeighborTieBreak(t *testing.T) {
	points := []Point{
		{Name: "O", X: 0, Y: 0},
		{Name: "N", X: 0, Y: 1},
		{Name: "S", X: 0, Y: -1},
		{Name: "E", X: 1, Y: 0},
	}

	// N, S and E are all at distance 1 from O, the lowest index wins
	partial := NearestNeighbor(points)
	require.Equal(t, 1, partial.Tour[1])

	// from N: E is sqrt(2) away, S is 2 away
	require.Equal(t, []int{0, 1, 3, 2}, partial.Tour)
}

func TestNearestNeighborEqualPoints(t *testing.T) {
	points := []Point{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	partial := NearestNeighbor(points)
	require.Equal(t, []int{0, 1, 2}, partial.Tour)
	require.Zero(t, partial.Distance)
}

func TestNearestNeighborPermutation(t *testing.T) {
	f := gofakeit.New(42)

	for range 20 {
		points := make([]Point, f.IntRange(2, 60))
		for i := range points {
			points[i] = Point{Name: f.City(), X: f.Float64Range(-50, 50), Y: f.Float64Range(-50, 50)}
		}

		partial := NearestNeighbor(points)
		require.Len(t, partial.Tour, len(points))
		require.Equal(t, 0, partial.Tour[0])
		require.ElementsMatch(t, indices(len(points)), partial.Tour)

		var walked float64
		for i := 1; i < len(partial.Tour); i++ {
			walked += Distance(points[partial.Tour[i-1]], points[partial.Tour[i]])
		}
		require.Equal(t, walked, partial.Distance)
	}
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
