package terrain

import (
	"fmt"

	"github.com/ctessum/geom"
)

// ExclusionRegion is a planar rectangle, in metres, where no obstruction
// block is emitted.
type ExclusionRegion struct {
	XMin, YMin float64
	XMax, YMax float64
}

func (e ExclusionRegion) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", e.XMin, e.XMax, e.YMin, e.YMax)
}

// Bounds returns the region as a geometry bounding box.
func (e ExclusionRegion) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: e.XMin, Y: e.YMin},
		Max: geom.Point{X: e.XMax, Y: e.YMax},
	}
}

// Contains reports whether (x, y) lies in the region, edges included.
func (e ExclusionRegion) Contains(x, y float64) bool {
	return e.Bounds().Overlaps(geom.Point{X: x, Y: y}.Bounds())
}

// excluded reports whether any region contains (x, y).
func excluded(regions []ExclusionRegion, x, y float64) bool {
	for _, e := range regions {
		if e.Contains(x, y) {
			return true
		}
	}
	return false
}
