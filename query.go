package openms

import (
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

// PPM converts a parts-per-million value to the raw fraction expected by
// NeighborhoodOptions.MZRelative, e.g. PPM(10) for a 10 ppm window.
func PPM(p float64) float64 {
	return p * 1e-6
}

// NeighborhoodOptions contains configuration options for Neighborhood.
type NeighborhoodOptions struct {
	// MZRelative interprets the m/z tolerance as a raw fraction of the
	// center's m/z instead of an absolute window: the window becomes
	// [mz*(1-tol), mz*(1+tol)]. Use PPM to express ppm values.
	MZRelative bool

	// IncludeSameMap keeps candidates that share the center's source map.
	// By default such candidates are excluded.
	IncludeSameMap bool

	// MaxLogFoldChange excludes candidates whose absolute log2 intensity
	// ratio against the center exceeds the bound. Negative values disable
	// the filter.
	MaxLogFoldChange float64
}

// DefaultNeighborhoodOptions contains the default configuration options
// for Neighborhood.
var DefaultNeighborhoodOptions = NeighborhoodOptions{
	MaxLogFoldChange: -1,
}

// RegionOptions contains configuration options for Region.
type RegionOptions struct {
	// IgnoredMap excludes features from the given source map. Values
	// outside [0, NumMaps) disable the exclusion.
	IgnoredMap int
}

// DefaultRegionOptions contains the default configuration options for
// Region.
var DefaultRegionOptions = RegionOptions{
	IgnoredMap: -1,
}

// Neighborhood returns the ids of all features inside the tolerance window
// around feature i: retention time within rtTol of the center and m/z
// within mzTol (absolute, or a fraction of the center's m/z with
// MZRelative). The center itself is always excluded. Id order within the
// bitmap carries no meaning.
func (fm *FeatureMaps) Neighborhood(i int, rtTol, mzTol float64, optFns ...func(o *NeighborhoodOptions)) (*roaring.Bitmap, error) {
	opts := DefaultNeighborhoodOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	fm.mu.RLock()
	defer fm.mu.RUnlock()

	start := time.Now()

	if err := fm.checkIndexLocked(i); err != nil {
		fm.opts.metrics.RecordNeighborhood(time.Since(start), err)
		fm.opts.logger.LogNeighborhood(i, 0, err)
		return nil, err
	}

	rtLo, rtHi := fm.rt[i]-rtTol, fm.rt[i]+rtTol

	mz := fm.mz[i]
	var mzLo, mzHi float64
	if opts.MZRelative {
		mzLo, mzHi = mz*(1-mzTol), mz*(1+mzTol)
	} else {
		mzLo, mzHi = mz-mzTol, mz+mzTol
	}

	center := uint32(i)
	centerMap := fm.mapIndex[i]
	centerIntensity := float64(fm.intensity[i])

	result := roaring.New()
	fm.tree.Range(rtLo, rtHi, mzLo, mzHi, func(id uint32) {
		if id == center {
			return
		}
		if !opts.IncludeSameMap && fm.mapIndex[id] == centerMap {
			return
		}
		if opts.MaxLogFoldChange >= 0 {
			fc := math.Abs(math.Log2(float64(fm.intensity[id]) / centerIntensity))
			if fc > opts.MaxLogFoldChange {
				return
			}
		}
		result.Add(id)
	})

	fm.opts.metrics.RecordNeighborhood(time.Since(start), nil)
	fm.opts.logger.LogNeighborhood(i, result.GetCardinality(), nil)
	return result, nil
}

// Region returns the ids of all features inside the closed bounding box
// [rtLo, rtHi] x [mzLo, mzHi], minus the ignored source map if one is
// configured. Id order within the bitmap carries no meaning.
func (fm *FeatureMaps) Region(rtLo, rtHi, mzLo, mzHi float64, optFns ...func(o *RegionOptions)) (*roaring.Bitmap, error) {
	opts := DefaultRegionOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	fm.mu.RLock()
	defer fm.mu.RUnlock()

	start := time.Now()

	if fm.tree == nil || fm.tree.Size() == 0 {
		err := &ErrIndexOutOfRange{Index: 0, Size: 0}
		fm.opts.metrics.RecordRegion(time.Since(start), err)
		fm.opts.logger.LogRegion(0, err)
		return nil, err
	}

	ignored := int64(-1)
	if opts.IgnoredMap >= 0 && opts.IgnoredMap < fm.numMaps {
		ignored = int64(opts.IgnoredMap)
	}

	result := roaring.New()
	fm.tree.Range(rtLo, rtHi, mzLo, mzHi, func(id uint32) {
		if ignored >= 0 && int64(fm.mapIndex[id]) == ignored {
			return
		}
		result.Add(id)
	})

	fm.opts.metrics.RecordRegion(time.Since(start), nil)
	fm.opts.logger.LogRegion(result.GetCardinality(), nil)
	return result, nil
}
