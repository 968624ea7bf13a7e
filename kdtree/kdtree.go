// Package kdtree implements a static, balanced 2-d tree over point ids,
// bulk-loaded by recursive median split.
//
// The tree is stored as an implicit arena: a single id slice in which the
// node for the range [lo, hi) sits at the median slot and its subtrees
// occupy the slots on either side. There are no per-node allocations, and
// rebuild-by-replacement amounts to discarding the old tree.
package kdtree

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrLengthMismatch indicates x and y coordinate slices of different lengths.
type ErrLengthMismatch struct {
	XLen int
	YLen int
}

// Error returns the error message for a coordinate length mismatch.
func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("coordinate length mismatch: %d x values, %d y values", e.XLen, e.YLen)
}

// Options contains configuration options for building the tree.
type Options struct {
	// Parallelism caps the number of goroutines used to build independent
	// subtrees. Values <= 1 build serially. The resulting tree layout is
	// identical either way.
	Parallelism int
}

// DefaultOptions contains the default configuration options for the tree.
var DefaultOptions = Options{
	Parallelism: 1,
}

// parallelCutoff is the smallest subtree worth handing to another goroutine.
const parallelCutoff = 2048

// Tree is an immutable balanced 2-d tree over point ids 0..n-1.
//
// Coordinates are copied at build time, so the tree is a snapshot of its
// input: later mutation of the caller's slices does not affect traversal.
// A Tree is safe for concurrent use once built.
type Tree struct {
	xs    []float64
	ys    []float64
	order []uint32
}

// New builds a tree over the given coordinate pairs. Point i has
// coordinates (xs[i], ys[i]). The split axis alternates with depth and the
// split value is the median of the node's points along that axis; ties are
// broken by id, so the layout is deterministic for a given input.
func New(xs, ys []float64, optFns ...func(o *Options)) (*Tree, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(xs) != len(ys) {
		return nil, &ErrLengthMismatch{XLen: len(xs), YLen: len(ys)}
	}

	t := &Tree{
		xs:    append([]float64(nil), xs...),
		ys:    append([]float64(nil), ys...),
		order: make([]uint32, len(xs)),
	}
	for i := range t.order {
		t.order[i] = uint32(i)
	}

	if opts.Parallelism > 1 && len(t.order) >= parallelCutoff {
		g := new(errgroup.Group)
		g.SetLimit(opts.Parallelism)
		t.buildParallel(0, len(t.order), 0, g)
		_ = g.Wait() // subtree builders never fail
	} else {
		t.build(0, len(t.order), 0)
	}

	return t, nil
}

// Size returns the number of points in the tree.
func (t *Tree) Size() int {
	return len(t.order)
}

// Range calls visit for every point whose coordinates fall inside the
// closed window [xLo, xHi] x [yLo, yHi]. Only subtrees whose interval along
// the split axis can intersect the window are descended. Visit order is
// unspecified.
func (t *Tree) Range(xLo, xHi, yLo, yHi float64, visit func(id uint32)) {
	t.search(0, len(t.order), 0, xLo, xHi, yLo, yHi, visit)
}

func (t *Tree) search(lo, hi, depth int, xLo, xHi, yLo, yHi float64, visit func(id uint32)) {
	for lo < hi {
		mid := lo + (hi-lo)/2
		id := t.order[mid]
		x, y := t.xs[id], t.ys[id]

		if x >= xLo && x <= xHi && y >= yLo && y <= yHi {
			visit(id)
		}

		// Everything left of mid is <= the split value, everything right
		// of mid is >= it, so each side is pruned against one window bound.
		var v, wLo, wHi float64
		if depth&1 == 0 {
			v, wLo, wHi = x, xLo, xHi
		} else {
			v, wLo, wHi = y, yLo, yHi
		}
		depth++

		goLeft := wLo <= v && mid > lo
		goRight := v <= wHi && mid+1 < hi

		switch {
		case goLeft && goRight:
			t.search(lo, mid, depth, xLo, xHi, yLo, yHi, visit)
			lo = mid + 1
		case goLeft:
			hi = mid
		case goRight:
			lo = mid + 1
		default:
			return
		}
	}
}

func (t *Tree) build(lo, hi, depth int) {
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		t.selectMedian(lo, hi, mid, depth&1)
		t.build(lo, mid, depth+1)
		lo, depth = mid+1, depth+1
	}
}

// buildParallel mirrors build but hands large left subtrees to the group
// when a worker slot is free. Subtree ranges are disjoint, so the workers
// never touch the same order slots.
func (t *Tree) buildParallel(lo, hi, depth int, g *errgroup.Group) {
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		t.selectMedian(lo, hi, mid, depth&1)

		left, d := lo, depth+1
		if mid-left >= parallelCutoff && g.TryGo(func() error {
			t.buildParallel(left, mid, d, g)
			return nil
		}) {
			// left subtree handed off
		} else {
			t.buildParallel(left, mid, d, g)
		}

		lo, depth = mid+1, depth+1
	}
}

// selectMedian partially sorts order[lo:hi] so that the k-th slot holds the
// k-th smallest point along the axis, smaller points before it and greater
// points after it (quickselect).
func (t *Tree) selectMedian(lo, hi, k, axis int) {
	for hi-lo > 1 {
		p := t.partition(lo, hi, axis)
		switch {
		case k < p:
			hi = p
		case k > p:
			lo = p + 1
		default:
			return
		}
	}
}

// partition performs a median-of-three Lomuto partition of order[lo:hi]
// and returns the pivot's final slot.
func (t *Tree) partition(lo, hi, axis int) int {
	mid := lo + (hi-lo)/2
	if t.less(t.order[mid], t.order[lo], axis) {
		t.swap(lo, mid)
	}
	if t.less(t.order[hi-1], t.order[lo], axis) {
		t.swap(lo, hi-1)
	}
	if t.less(t.order[hi-1], t.order[mid], axis) {
		t.swap(mid, hi-1)
	}
	t.swap(mid, hi-1)

	pivot := t.order[hi-1]
	i := lo
	for j := lo; j < hi-1; j++ {
		if t.less(t.order[j], pivot, axis) {
			t.swap(i, j)
			i++
		}
	}
	t.swap(i, hi-1)
	return i
}

// less orders points by coordinate along the axis, falling back to id so
// that every pair of points compares strictly.
func (t *Tree) less(a, b uint32, axis int) bool {
	var av, bv float64
	if axis == 0 {
		av, bv = t.xs[a], t.xs[b]
	} else {
		av, bv = t.ys[a], t.ys[b]
	}
	if av != bv {
		return av < bv
	}
	return a < b
}

func (t *Tree) swap(i, j int) {
	t.order[i], t.order[j] = t.order[j], t.order[i]
}
