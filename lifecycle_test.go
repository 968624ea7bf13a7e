package openms_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openms "github.com/maxvk79/OpenMS"
	"github.com/maxvk79/OpenMS/testutil"
	"github.com/maxvk79/OpenMS/transform"
)

func TestConcurrentQueries(t *testing.T) {
	rng := testutil.NewRNG(23)
	fm := openms.New(openms.WithBuildParallelism(4))
	require.NoError(t, openms.AddMaps(fm, rng.Maps(3, 200, 1000, 1000)))

	reference, err := fm.Region(100, 900, 100, 900)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				ids, err := fm.Region(100, 900, 100, 900)
				assert.NoError(t, err)
				assert.True(t, reference.Equals(ids))

				_, err = fm.Neighborhood(i, 10, 5)
				assert.NoError(t, err)

				_, err = fm.RT(i)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestTransformThenQueryLifecycle(t *testing.T) {
	rng := testutil.NewRNG(31)
	fm := openms.New()
	require.NoError(t, openms.AddMaps(fm, rng.Maps(2, 100, 1000, 1000)))

	before, err := fm.Region(200, 800, 0, 1000)
	require.NoError(t, err)

	// Shift every map by +50: the same window shifted by +50 must return
	// the same id set against the rebuilt tree.
	require.NoError(t, fm.ApplyTransformations([]transform.Model{
		transform.Linear{Slope: 1, Intercept: 50},
		transform.Linear{Slope: 1, Intercept: 50},
	}))

	after, err := fm.Region(250, 850, 0, 1000)
	require.NoError(t, err)
	assert.True(t, before.Equals(after))
}
