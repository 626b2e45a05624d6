package geodesy

import (
	"fmt"
	"math"

	"github.com/pavletto/demterrain/internal/errs"
)

// Mode selects how the reference point anchors the planar domain.
type Mode int

const (
	// ModeNone is the zero value; resolving a frame without a mode fails.
	ModeNone Mode = iota
	// ModeOrigin pins the reference point at the domain's (0, 0) corner.
	ModeOrigin
	// ModeCenter pins the reference point at the domain center.
	ModeCenter
	// ModeBoundingBox derives the extents from a longitude/latitude box
	// and centers the reference point in it.
	ModeBoundingBox
)

func (m Mode) String() string {
	switch m {
	case ModeOrigin:
		return "origin"
	case ModeCenter:
		return "center"
	case ModeBoundingBox:
		return "bounding-box"
	}
	return "none"
}

// LonLatBox is an axis-aligned longitude/latitude rectangle in degrees.
type LonLatBox struct {
	LongMin, LongMax float64
	LatMin, LatMax   float64
}

// Contains reports whether the point lies in the box, edges included.
func (b LonLatBox) Contains(lon, lat float64) bool {
	return lon >= b.LongMin && lon <= b.LongMax && lat >= b.LatMin && lat <= b.LatMax
}

func (b LonLatBox) String() string {
	return fmt.Sprintf("lon [%.6f, %.6f] lat [%.6f, %.6f]", b.LongMin, b.LongMax, b.LatMin, b.LatMax)
}

// FrameParams is the unresolved reference frame as read from a case.
// XMax and YMax are ignored in ModeBoundingBox; Box is only read there.
type FrameParams struct {
	Mode    Mode
	LongRef float64
	LatRef  float64
	XMax    float64
	YMax    float64
	Box     LonLatBox
}

// ReferenceFrame ties planar simulation coordinates (metres, x east,
// y north, origin at the domain's south-west corner) to longitude and
// latitude. It is immutable once resolved.
type ReferenceFrame struct {
	Mode    Mode
	LongRef float64
	LatRef  float64
	XMax    float64
	YMax    float64
	// XRef, YRef are the planar coordinates of (LongRef, LatRef).
	XRef float64
	YRef float64
	// Bounds is the longitude/latitude extent of the domain. The
	// longitude span is taken at LatRef in ModeOrigin and ModeCenter, so
	// lattice points poleward of LatRef reach slightly past it.
	Bounds LonLatBox
}

// ResolveFrame validates p and computes the reference offsets and the
// domain bounds for its mode.
func ResolveFrame(p FrameParams) (ReferenceFrame, error) {
	f := ReferenceFrame{Mode: p.Mode, LongRef: p.LongRef, LatRef: p.LatRef, XMax: p.XMax, YMax: p.YMax}

	switch p.Mode {
	case ModeOrigin:
		if err := checkExtents(p.XMax, p.YMax); err != nil {
			return ReferenceFrame{}, err
		}
		dlat := latSpan(p.YMax)
		dlong := math.Abs(longSpan(p.XMax, rad(p.LatRef)))
		f.Bounds = LonLatBox{
			LongMin: p.LongRef,
			LongMax: p.LongRef + deg(dlong),
			LatMin:  p.LatRef,
			LatMax:  p.LatRef + deg(dlat),
		}

	case ModeCenter:
		if err := checkExtents(p.XMax, p.YMax); err != nil {
			return ReferenceFrame{}, err
		}
		f.XRef = p.XMax / 2
		f.YRef = p.YMax / 2
		dlat := latSpan(f.YRef)
		dlong := math.Abs(longSpan(f.XRef, rad(p.LatRef)))
		f.Bounds = LonLatBox{
			LongMin: p.LongRef - deg(dlong),
			LongMax: p.LongRef + deg(dlong),
			LatMin:  p.LatRef - deg(dlat),
			LatMax:  p.LatRef + deg(dlat),
		}

	case ModeBoundingBox:
		b := p.Box
		if !(b.LongMax > b.LongMin) || !(b.LatMax > b.LatMin) {
			return ReferenceFrame{}, errs.Configf("bounding box %+v is empty", b)
		}
		f.LongRef = (b.LongMin + b.LongMax) / 2
		f.LatRef = (b.LatMin + b.LatMax) / 2
		f.XMax = SphereDistance(b.LongMin, f.LatRef, b.LongMax, f.LatRef)
		f.YMax = SphereDistance(f.LongRef, b.LatMin, f.LongRef, b.LatMax)
		f.XRef = f.XMax / 2
		f.YRef = f.YMax / 2
		f.Bounds = b

	default:
		return ReferenceFrame{}, errs.Configf("a longitude/latitude reference must be given as origin, center or bounding box")
	}

	if err := checkExtents(f.XMax, f.YMax); err != nil {
		return ReferenceFrame{}, err
	}
	return f, nil
}

func checkExtents(xmax, ymax float64) error {
	if !(xmax > 0) || !(ymax > 0) {
		return errs.Configf("domain extents must be positive, got xmax=%g ymax=%g", xmax, ymax)
	}
	return nil
}

// ToLonLat maps planar coordinates to longitude/latitude in degrees.
// The longitude shrinkage uses the latitude of the point itself, not of
// the reference.
func (f ReferenceFrame) ToLonLat(x, y float64) (lon, lat float64) {
	dlat := latSpan(y - f.YRef)
	dlong := longSpan(x-f.XRef, rad(f.LatRef)+dlat)
	return f.LongRef + deg(dlong), f.LatRef + deg(dlat)
}
