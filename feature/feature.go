// Package feature defines the point payloads stored by the feature maps index.
package feature

// Point is the read-only view of a feature required for indexing.
// Any type exposing retention time, m/z, intensity and charge can be
// ingested through the generic read-only path.
type Point interface {
	// RT returns the retention time in seconds.
	RT() float64

	// MZ returns the mass-to-charge ratio.
	MZ() float64

	// Intensity returns the feature intensity.
	Intensity() float32

	// Charge returns the charge state (0 if unknown).
	Charge() int
}

// Feature is a concrete point feature with mutable fields.
// It satisfies Point; mutation goes through the Set methods.
type Feature struct {
	rt        float64
	mz        float64
	intensity float32
	quality   float32
	charge    int
}

// New creates a feature with the given coordinates, intensity and charge.
func New(rt, mz float64, intensity float32, charge int) *Feature {
	return &Feature{
		rt:        rt,
		mz:        mz,
		intensity: intensity,
		charge:    charge,
	}
}

// RT returns the retention time in seconds.
func (f Feature) RT() float64 { return f.rt }

// MZ returns the mass-to-charge ratio.
func (f Feature) MZ() float64 { return f.mz }

// Intensity returns the feature intensity.
func (f Feature) Intensity() float32 { return f.intensity }

// Charge returns the charge state.
func (f Feature) Charge() int { return f.charge }

// Quality returns the overall feature quality.
func (f Feature) Quality() float32 { return f.quality }

// SetRT sets the retention time.
func (f *Feature) SetRT(rt float64) { f.rt = rt }

// SetMZ sets the mass-to-charge ratio.
func (f *Feature) SetMZ(mz float64) { f.mz = mz }

// SetIntensity sets the feature intensity.
func (f *Feature) SetIntensity(intensity float32) { f.intensity = intensity }

// SetCharge sets the charge state.
func (f *Feature) SetCharge(charge int) { f.charge = charge }

// SetQuality sets the overall feature quality.
func (f *Feature) SetQuality(quality float32) { f.quality = quality }
