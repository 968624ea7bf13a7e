package openms

import (
	"sync"
	"time"

	"github.com/maxvk79/OpenMS/feature"
	"github.com/maxvk79/OpenMS/kdtree"
	"github.com/maxvk79/OpenMS/transform"
)

// PayloadMode describes how a FeatureMaps instance references its
// payloads. The mode is fixed at construction time and never changes,
// not even across Clear.
type PayloadMode int

const (
	// PayloadReadOnly stores shared references; payloads are never
	// mutable through the index.
	PayloadReadOnly PayloadMode = iota

	// PayloadMutable stores exclusively owned references; payload fields
	// remain writable through MutableFeature.
	PayloadMutable
)

// String returns a string representation of the PayloadMode.
func (m PayloadMode) String() string {
	switch m {
	case PayloadReadOnly:
		return "read-only"
	case PayloadMutable:
		return "mutable"
	default:
		return "unknown"
	}
}

// FeatureMaps stores point features from multiple maps column-wise,
// together with a balanced 2-d tree over (retention time, m/z) for fast
// neighborhood and region queries.
//
// Ingestion, Clear and ApplyTransformations take exclusive access;
// queries and accessors may run concurrently with each other. The tree is
// rebuilt wholesale inside every mutating call, so a query never observes
// transformed coordinates against a stale tree.
type FeatureMaps struct {
	mu   sync.RWMutex
	mode PayloadMode

	// Column storage, indexed by feature id in ingestion order.
	rt        []float64 // rewritten by ApplyTransformations
	mz        []float64
	intensity []float32
	charge    []int
	mapIndex  []uint32

	payloads []feature.Point
	mutable  []*feature.Feature // populated only in PayloadMutable mode

	numMaps int
	tree    *kdtree.Tree

	opts options
}

// New creates an empty instance holding shared read-only payloads.
func New(optFns ...Option) *FeatureMaps {
	return &FeatureMaps{
		mode: PayloadReadOnly,
		opts: applyOptions(optFns),
	}
}

// NewMutable creates an empty instance holding exclusively owned payloads
// whose fields remain writable through MutableFeature.
func NewMutable(optFns ...Option) *FeatureMaps {
	return &FeatureMaps{
		mode: PayloadMutable,
		opts: applyOptions(optFns),
	}
}

// AddMaps ingests read-only feature maps and rebuilds the tree. The outer
// slice index becomes the source map index of every contained feature.
//
// The instance must be in PayloadReadOnly mode. The first ingestion fixes
// the number of source maps; later batches must present the same outer
// length. AddMaps is a function rather than a method because Go methods
// cannot be generic.
func AddMaps[P feature.Point](fm *FeatureMaps, maps [][]P) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	start := time.Now()

	if fm.mode != PayloadReadOnly {
		return fm.finishIngestLocked(start, len(maps), 0,
			&ErrOwnershipConflict{Mode: fm.mode, Requested: PayloadReadOnly})
	}
	if err := fm.reserveMapsLocked(len(maps)); err != nil {
		return fm.finishIngestLocked(start, len(maps), 0, err)
	}

	added := 0
	for mi, m := range maps {
		for _, p := range m {
			fm.appendLocked(uint32(mi), p, nil)
			added++
		}
	}

	if err := fm.rebuildLocked(); err != nil {
		return fm.finishIngestLocked(start, len(maps), added, err)
	}
	return fm.finishIngestLocked(start, len(maps), added, nil)
}

// AddSharedMaps ingests concrete features as shared read-only payloads.
// The features are never mutable through the index, regardless of the
// caller keeping its own pointers.
func (fm *FeatureMaps) AddSharedMaps(maps [][]*feature.Feature) error {
	return AddMaps(fm, maps)
}

// AddMutableMaps ingests concrete features as exclusively owned payloads
// and rebuilds the tree. The instance must be in PayloadMutable mode.
func (fm *FeatureMaps) AddMutableMaps(maps [][]*feature.Feature) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	start := time.Now()

	if fm.mode != PayloadMutable {
		return fm.finishIngestLocked(start, len(maps), 0,
			&ErrOwnershipConflict{Mode: fm.mode, Requested: PayloadMutable})
	}
	if err := fm.reserveMapsLocked(len(maps)); err != nil {
		return fm.finishIngestLocked(start, len(maps), 0, err)
	}

	added := 0
	for mi, m := range maps {
		for _, f := range m {
			fm.appendLocked(uint32(mi), f, f)
			added++
		}
	}

	if err := fm.rebuildLocked(); err != nil {
		return fm.finishIngestLocked(start, len(maps), added, err)
	}
	return fm.finishIngestLocked(start, len(maps), added, nil)
}

// ApplyTransformations rewrites every retention time through the model of
// its source map and rebuilds the tree. Exactly one model per source map
// is required, in map index order; on a count mismatch no coordinate is
// touched.
func (fm *FeatureMaps) ApplyTransformations(models []transform.Model) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	start := time.Now()

	if len(models) != fm.numMaps {
		err := &ErrMapCountMismatch{Expected: fm.numMaps, Actual: len(models)}
		fm.opts.metrics.RecordTransform(len(models), time.Since(start), err)
		fm.opts.logger.LogTransform(len(models), err)
		return err
	}

	for i := range fm.rt {
		fm.rt[i] = models[fm.mapIndex[i]].Evaluate(fm.rt[i])
	}

	err := fm.rebuildLocked()
	fm.opts.metrics.RecordTransform(len(models), time.Since(start), err)
	fm.opts.logger.LogTransform(len(models), err)
	return err
}

// Clear empties all storage, resets the number of source maps to zero and
// drops the tree. The payload mode is retained. Ids returned by earlier
// queries are meaningless afterwards.
func (fm *FeatureMaps) Clear() {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	fm.rt = nil
	fm.mz = nil
	fm.intensity = nil
	fm.charge = nil
	fm.mapIndex = nil
	fm.payloads = nil
	fm.mutable = nil
	fm.numMaps = 0
	fm.tree = nil
}

// Size returns the number of stored features.
func (fm *FeatureMaps) Size() int {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return len(fm.rt)
}

// NumMaps returns the number of source maps.
func (fm *FeatureMaps) NumMaps() int {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return fm.numMaps
}

// TreeSize returns the number of features in the tree (0 before the first
// ingestion and after Clear).
func (fm *FeatureMaps) TreeSize() int {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if fm.tree == nil {
		return 0
	}
	return fm.tree.Size()
}

// Mode returns the payload ownership mode fixed at construction.
func (fm *FeatureMaps) Mode() PayloadMode {
	return fm.mode
}

// RT returns the (possibly transformed) retention time of feature i.
func (fm *FeatureMaps) RT(i int) (float64, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return 0, err
	}
	return fm.rt[i], nil
}

// MZ returns the mass-to-charge ratio of feature i.
func (fm *FeatureMaps) MZ(i int) (float64, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return 0, err
	}
	return fm.mz[i], nil
}

// Intensity returns the intensity of feature i.
func (fm *FeatureMaps) Intensity(i int) (float32, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return 0, err
	}
	return fm.intensity[i], nil
}

// Charge returns the charge state of feature i.
func (fm *FeatureMaps) Charge(i int) (int, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return 0, err
	}
	return fm.charge[i], nil
}

// MapIndex returns the source map index of feature i.
func (fm *FeatureMaps) MapIndex(i int) (int, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return 0, err
	}
	return int(fm.mapIndex[i]), nil
}

// Feature returns the read-only payload of feature i. Available in both
// payload modes.
func (fm *FeatureMaps) Feature(i int) (feature.Point, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return nil, err
	}
	return fm.payloads[i], nil
}

// MutableFeature returns the writable payload of feature i. It fails with
// ErrImmutablePayload when the instance holds read-only payloads.
func (fm *FeatureMaps) MutableFeature(i int) (*feature.Feature, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if err := fm.checkIndexLocked(i); err != nil {
		return nil, err
	}
	if fm.mode != PayloadMutable {
		return nil, ErrImmutablePayload
	}
	return fm.mutable[i], nil
}

func (fm *FeatureMaps) checkIndexLocked(i int) error {
	if i < 0 || i >= len(fm.rt) {
		return &ErrIndexOutOfRange{Index: i, Size: len(fm.rt)}
	}
	return nil
}

// reserveMapsLocked fixes the number of source maps on first ingestion and
// rejects later batches with a different outer length.
func (fm *FeatureMaps) reserveMapsLocked(n int) error {
	if fm.numMaps == 0 {
		fm.numMaps = n
		return nil
	}
	if n != fm.numMaps {
		return &ErrMapCountMismatch{Expected: fm.numMaps, Actual: n}
	}
	return nil
}

func (fm *FeatureMaps) appendLocked(mapIdx uint32, p feature.Point, mut *feature.Feature) {
	fm.rt = append(fm.rt, p.RT())
	fm.mz = append(fm.mz, p.MZ())
	fm.intensity = append(fm.intensity, p.Intensity())
	fm.charge = append(fm.charge, p.Charge())
	fm.mapIndex = append(fm.mapIndex, mapIdx)
	fm.payloads = append(fm.payloads, p)
	if fm.mode == PayloadMutable {
		fm.mutable = append(fm.mutable, mut)
	}
}

// rebuildLocked replaces the tree with a fresh build over the current
// coordinates.
func (fm *FeatureMaps) rebuildLocked() error {
	start := time.Now()

	tree, err := kdtree.New(fm.rt, fm.mz, func(o *kdtree.Options) {
		o.Parallelism = fm.opts.buildParallelism
	})
	if err != nil {
		return err
	}
	fm.tree = tree

	fm.opts.metrics.RecordBuild(tree.Size(), time.Since(start))
	fm.opts.logger.LogBuild(tree.Size(), time.Since(start))
	return nil
}

func (fm *FeatureMaps) finishIngestLocked(start time.Time, mapCount, added int, err error) error {
	fm.opts.metrics.RecordIngest(added, time.Since(start), err)
	fm.opts.logger.LogIngest(fm.mode, mapCount, added, err)
	return err
}
