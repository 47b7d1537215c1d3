package bbolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tymbaca/tour-go/tour"
)

func TestBbolt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	storage, err := New(path)
	require.NoError(t, err)

	_, ok, err := storage.Get(ctx, "key1")
	require.NoError(t, err)
	require.False(t, ok)

	res := tour.Result{
		Tour:     []tour.Point{{Name: "A"}, {Name: "A"}, {Name: "B", X: 0.5, Y: 1.25}, {Name: "A"}},
		Distance: 1.3975424859373686,
	}
	require.NoError(t, storage.Put(ctx, "key1", res))

	got, ok, err := storage.Get(ctx, "key1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, res, got)

	// survives reopening
	require.NoError(t, storage.Close())
	storage, err = New(path)
	require.NoError(t, err)

	got, ok, err = storage.Get(ctx, "key1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, res, got)

	// overwrite
	res.Distance = 2
	require.NoError(t, storage.Put(ctx, "key1", res))
	got, _, err = storage.Get(ctx, "key1")
	require.NoError(t, err)
	require.Equal(t, 2.0, got.Distance)

	require.NoError(t, storage.Destroy())
	require.NoFileExists(t, path)
}
