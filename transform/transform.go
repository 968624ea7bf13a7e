// Package transform provides retention time correction models.
//
// A model is a pure function from one retention time to another, typically
// the evaluation side of a regression fitted during map alignment. The
// index applies one model per source map through the Model interface and
// never inspects how the model was fitted.
package transform

import (
	"fmt"
	"sort"
)

// Model corrects a single retention time value.
type Model interface {
	// Evaluate maps a raw retention time to its corrected value.
	Evaluate(rt float64) float64
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(rt float64) float64

// Evaluate implements Model.
func (f ModelFunc) Evaluate(rt float64) float64 { return f(rt) }

// Identity returns a model that leaves retention times unchanged.
func Identity() Model {
	return ModelFunc(func(rt float64) float64 { return rt })
}

// Linear is the model rt' = Slope*rt + Intercept.
type Linear struct {
	Slope     float64
	Intercept float64
}

// Evaluate implements Model.
func (m Linear) Evaluate(rt float64) float64 {
	return m.Slope*rt + m.Intercept
}

// ErrTooFewPairs indicates that an interpolated model was given fewer than
// two support pairs.
type ErrTooFewPairs struct {
	Pairs int
}

// Error returns the error message for too few support pairs.
func (e *ErrTooFewPairs) Error() string {
	return fmt.Sprintf("interpolated model needs at least 2 pairs, got %d", e.Pairs)
}

// ErrPairLengthMismatch indicates x and y support slices of different lengths.
type ErrPairLengthMismatch struct {
	XLen int
	YLen int
}

// Error returns the error message for a support length mismatch.
func (e *ErrPairLengthMismatch) Error() string {
	return fmt.Sprintf("support length mismatch: %d x values, %d y values", e.XLen, e.YLen)
}

// Interpolated evaluates a piecewise-linear curve through (x, y) support
// pairs, extrapolating linearly beyond the outermost pairs. This is the
// runtime shape of a smoothed alignment fit: the fitting itself happens
// elsewhere, only evaluation is needed here.
type Interpolated struct {
	xs []float64
	ys []float64
}

// NewInterpolated creates an interpolated model from support pairs.
// The pairs are copied and sorted by x.
func NewInterpolated(xs, ys []float64) (*Interpolated, error) {
	if len(xs) != len(ys) {
		return nil, &ErrPairLengthMismatch{XLen: len(xs), YLen: len(ys)}
	}
	if len(xs) < 2 {
		return nil, &ErrTooFewPairs{Pairs: len(xs)}
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	m := &Interpolated{
		xs: make([]float64, len(xs)),
		ys: make([]float64, len(ys)),
	}
	for i, j := range idx {
		m.xs[i] = xs[j]
		m.ys[i] = ys[j]
	}
	return m, nil
}

// Evaluate implements Model.
func (m *Interpolated) Evaluate(rt float64) float64 {
	n := len(m.xs)

	// Index of the first support point with x >= rt.
	i := sort.SearchFloat64s(m.xs, rt)

	switch {
	case i == 0:
		i = 1 // extrapolate with the first segment
	case i == n:
		i = n - 1 // extrapolate with the last segment
	}

	x0, x1 := m.xs[i-1], m.xs[i]
	y0, y1 := m.ys[i-1], m.ys[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(rt-x0)/(x1-x0)
}
