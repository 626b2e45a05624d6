package terrain

import "gonum.org/v1/gonum/floats"

// DeriveSentinel marks an unset vertical bound; values at or below it
// are derived from the sampled elevations.
const DeriveSentinel = -999.0

// VerticalRange is the z extent of the simulation domain.
type VerticalRange struct {
	ZMin, ZMax float64
	// ElevMin, ElevMax are the sampled extremes.
	ElevMin, ElevMax float64
}

// Range computes the vertical extent of g. Explicit bounds above
// DeriveSentinel are kept; the others come from the sampled minimum and
// maximum widened by a tenth of their spread, or by one unit when the
// terrain is flat.
func (g *SampleGrid) Range(zmin, zmax float64) VerticalRange {
	lo, hi := floats.Min(g.Elev), floats.Max(g.Elev)
	pad := (hi - lo) / 10
	if pad == 0 {
		pad = 1
	}
	vr := VerticalRange{ZMin: lo - pad, ZMax: hi + pad, ElevMin: lo, ElevMax: hi}
	if zmin > DeriveSentinel {
		vr.ZMin = zmin
	}
	if zmax > DeriveSentinel {
		vr.ZMax = zmax
	}
	return vr
}
