// Package cityio reads point sets and writes tour results in the JSON
// formats used on disk: cities.json in, result.json out.
package cityio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/tymbaca/tour-go/tour"
)

type record struct {
	Name string   `json:"name"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

// Load reads a JSON array of {"name", "x", "y"} records. Both coordinates
// are required and nothing may follow the array.
func Load(r io.Reader) ([]tour.Point, error) {
	dec := json.NewDecoder(r)

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode cities: %v", tour.ErrInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode cities: unexpected data after the array", tour.ErrInput)
	}

	points := make([]tour.Point, len(records))
	for i, rec := range records {
		if rec.X == nil || rec.Y == nil {
			return nil, fmt.Errorf("%w: city %d (%q) is missing a coordinate", tour.ErrInput, i, rec.Name)
		}
		points[i] = tour.Point{Name: rec.Name, X: *rec.X, Y: *rec.Y}
	}

	return points, nil
}

func LoadFile(path string) ([]tour.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tour.ErrInput, err)
	}
	defer f.Close()

	return Load(f)
}

// Write writes the result as an indented flat list, tour points first and
// the total_distance record last.
func Write(w io.Writer, res tour.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}

// WriteFile creates path only after the result was encoded, so a failed
// run never leaves a partial file behind.
func WriteFile(path string, res tour.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// Random generates n cities with coordinates in [0, size). The same seed
// gives the same cities.
func Random(n int, size float64, seed uint64) []tour.Point {
	f := gofakeit.New(seed)

	points := make([]tour.Point, n)
	for i := range points {
		points[i] = tour.Point{
			Name: f.City(),
			X:    f.Float64Range(0, size),
			Y:    f.Float64Range(0, size),
		}
	}

	return points
}
