package kdtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(t *testing.T, n int, seed int64) ([]float64, []float64) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64() * 100
		ys[i] = rng.Float64() * 100
	}
	return xs, ys
}

func collect(tree *Tree, xLo, xHi, yLo, yHi float64) []uint32 {
	var ids []uint32
	tree.Range(xLo, xHi, yLo, yHi, func(id uint32) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func bruteForce(xs, ys []float64, xLo, xHi, yLo, yHi float64) []uint32 {
	var ids []uint32
	for i := range xs {
		if xs[i] >= xLo && xs[i] <= xHi && ys[i] >= yLo && ys[i] <= yHi {
			ids = append(ids, uint32(i))
		}
	}
	return ids
}

func TestNew(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		tree, err := New(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Size())

		visited := false
		tree.Range(-1e9, 1e9, -1e9, 1e9, func(uint32) { visited = true })
		assert.False(t, visited)
	})

	t.Run("SinglePoint", func(t *testing.T) {
		tree, err := New([]float64{1.5}, []float64{2.5})
		require.NoError(t, err)
		assert.Equal(t, 1, tree.Size())
		assert.Equal(t, []uint32{0}, collect(tree, 1, 2, 2, 3))
		assert.Empty(t, collect(tree, 2, 3, 2, 3))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := New([]float64{1, 2}, []float64{1})
		require.Error(t, err)

		var lm *ErrLengthMismatch
		require.ErrorAs(t, err, &lm)
		assert.Equal(t, 2, lm.XLen)
		assert.Equal(t, 1, lm.YLen)
	})

	t.Run("Snapshot", func(t *testing.T) {
		xs := []float64{1, 2, 3}
		ys := []float64{1, 2, 3}
		tree, err := New(xs, ys)
		require.NoError(t, err)

		// Mutating the input after the build must not affect traversal.
		xs[0], ys[0] = 100, 100
		assert.Equal(t, []uint32{0}, collect(tree, 0.5, 1.5, 0.5, 1.5))
	})
}

func TestRange(t *testing.T) {
	xs, ys := randomPoints(t, 500, 42)
	tree, err := New(xs, ys)
	require.NoError(t, err)
	require.Equal(t, 500, tree.Size())

	t.Run("AllSpace", func(t *testing.T) {
		ids := collect(tree, -1, 101, -1, 101)
		require.Len(t, ids, 500)
		for i, id := range ids {
			assert.Equal(t, uint32(i), id)
		}
	})

	t.Run("RandomWindows", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			xLo := rng.Float64() * 100
			xHi := xLo + rng.Float64()*30
			yLo := rng.Float64() * 100
			yHi := yLo + rng.Float64()*30

			assert.Equal(t,
				bruteForce(xs, ys, xLo, xHi, yLo, yHi),
				collect(tree, xLo, xHi, yLo, yHi),
			)
		}
	})

	t.Run("EmptyWindow", func(t *testing.T) {
		assert.Empty(t, collect(tree, 200, 300, 200, 300))
		// Inverted bounds match nothing.
		assert.Empty(t, collect(tree, 50, 40, 0, 100))
	})
}

func TestDuplicateCoordinates(t *testing.T) {
	// All points share the same coordinates; the id tie-break must still
	// produce a valid tree containing each point exactly once.
	n := 64
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = 5.0
		ys[i] = 7.0
	}

	tree, err := New(xs, ys)
	require.NoError(t, err)

	ids := collect(tree, 5, 5, 7, 7)
	require.Len(t, ids, n)
	for i, id := range ids {
		assert.Equal(t, uint32(i), id)
	}
}

func TestDeterministicLayout(t *testing.T) {
	xs, ys := randomPoints(t, 4096, 99)

	serial, err := New(xs, ys)
	require.NoError(t, err)

	again, err := New(xs, ys)
	require.NoError(t, err)
	assert.Equal(t, serial.order, again.order)

	parallel, err := New(xs, ys, func(o *Options) {
		o.Parallelism = 4
	})
	require.NoError(t, err)
	assert.Equal(t, serial.order, parallel.order)
}

func TestParallelRange(t *testing.T) {
	xs, ys := randomPoints(t, 5000, 3)

	tree, err := New(xs, ys, func(o *Options) {
		o.Parallelism = 8
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		xLo := rng.Float64() * 100
		xHi := xLo + rng.Float64()*20
		yLo := rng.Float64() * 100
		yHi := yLo + rng.Float64()*20

		assert.Equal(t,
			bruteForce(xs, ys, xLo, xHi, yLo, yHi),
			collect(tree, xLo, xHi, yLo, yHi),
		)
	}
}
