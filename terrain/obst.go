package terrain

import "github.com/pavletto/demterrain/fuel"

// Block is one obstruction column standing on z = 0.
type Block struct {
	X1, X2  float64
	Y1, Y2  float64
	Height  float64
	Surface int
}

// ObstructionGrid is terrain as a field of blocks, one per lattice cell
// not removed by an exclusion region, listed north row first.
type ObstructionGrid struct {
	Blocks   []Block
	Excluded int
	Surfaces []fuel.Surface
}

func buildObstructions(g *SampleGrid, exclusions []ExclusionRegion, buf float64) *ObstructionGrid {
	l := g.Lattice
	xmax, ymax := l.Frame.XMax, l.Frame.YMax
	og := &ObstructionGrid{
		Blocks:   make([]Block, 0, (g.Cols-1)*(g.Rows-1)),
		Surfaces: terrainSurfaces,
	}
	for r := 0; r < g.Rows-1; r++ {
		// Row r is the north edge of the cell, row r+1 the south edge.
		y1, y2 := l.Y(r+1), l.Y(r)
		for c := 0; c < g.Cols-1; c++ {
			x1, x2 := l.X(c), l.X(c+1)
			if excluded(exclusions, (x1+x2)/2, (y1+y2)/2) {
				og.Excluded++
				continue
			}
			h := (g.At(r, c) + g.At(r, c+1) + g.At(r+1, c) + g.At(r+1, c+1)) / 4
			s := SurfaceInterior
			if nearBoundary(x1, x2, y1, y2, xmax, ymax, buf) {
				s = SurfaceBoundary
			}
			og.Blocks = append(og.Blocks, Block{X1: x1, X2: x2, Y1: y1, Y2: y2, Height: h, Surface: s})
		}
	}
	return og
}
