package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tymbaca/tour-go/cityio"
	"github.com/tymbaca/tour-go/tour"
)

func writeCities(t *testing.T, dir string, points []tour.Point) string {
	t.Helper()

	data, err := json.Marshal(points)
	require.NoError(t, err)

	path := filepath.Join(dir, "cities.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func readResult(t *testing.T, path string) tour.Result {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var res tour.Result
	require.NoError(t, json.Unmarshal(data, &res))

	return res
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := writeCities(t, dir, []tour.Point{
		{Name: "A", X: 0, Y: 0},
		{Name: "B", X: 0, Y: 1},
		{Name: "C", X: 3, Y: 0},
		{Name: "D", X: 3, Y: 1},
	})
	out := filepath.Join(dir, "out", "result.json")

	cfg, err := parseFlags([]string{"-in", in, "-out", out, "-workers", "2", "-log-level", "warn"})
	require.NoError(t, err)
	require.NoError(t, run(context.Background(), cfg))

	res := readResult(t, out)
	require.Len(t, res.Tour, 6)
	require.Equal(t, 2.0, res.Distance)
}

func TestRunRandomWithStores(t *testing.T) {
	// the memory store lives for one run only, the database stores persist
	for store, wantHits := range map[string]uint64{"memory": 0, "bbolt": 1, "sqlite": 1} {
		t.Run(store, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "result.json")

			cfg, err := parseFlags([]string{
				"-random", "120", "-seed", "5", "-workers", "4",
				"-store", store, "-db", filepath.Join(dir, "tour.db"),
				"-out", out, "-log-level", "error",
			})
			require.NoError(t, err)

			require.NoError(t, run(context.Background(), cfg))
			first := readResult(t, out)

			hits := tour.GlobalStats.CacheHits.Load()
			require.NoError(t, run(context.Background(), cfg))
			require.Equal(t, wantHits, tour.GlobalStats.CacheHits.Load()-hits)
			require.Equal(t, first, readResult(t, out))

			require.Len(t, first.Tour, 122)
			require.Equal(t, cityio.Random(120, 100, 5)[0], first.Tour[0])
		})
	}
}

func TestRunFailsWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeCities(t, dir, []tour.Point{{Name: "A"}, {Name: "B", X: 1}})
	out := filepath.Join(dir, "result.json")

	cfg, err := parseFlags([]string{"-in", in, "-out", out, "-workers", "3", "-log-level", "error"})
	require.NoError(t, err)
	require.ErrorIs(t, run(context.Background(), cfg), tour.ErrConfiguration)
	require.NoFileExists(t, out)

	cfg, err = parseFlags([]string{"-in", filepath.Join(dir, "missing.json"), "-out", out, "-log-level", "error"})
	require.NoError(t, err)
	require.ErrorIs(t, run(context.Background(), cfg), tour.ErrInput)
	require.NoFileExists(t, out)
}

func TestRunBadStore(t *testing.T) {
	cfg, err := parseFlags([]string{"-random", "3", "-store", "redis", "-out", filepath.Join(t.TempDir(), "r.json")})
	require.NoError(t, err)
	require.Error(t, run(context.Background(), cfg))
}

func TestRunBadLogLevel(t *testing.T) {
	cfg, err := parseFlags([]string{"-random", "3", "-log-level", "loud", "-out", filepath.Join(t.TempDir(), "r.json")})
	require.NoError(t, err)

	err = run(context.Background(), cfg)
	require.ErrorContains(t, err, `bad -log-level "loud"`)
}
