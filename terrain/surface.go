package terrain

import "github.com/pavletto/demterrain/fuel"

// Surface codes used when no fuel grid is supplied.
const (
	SurfaceInterior = 1
	SurfaceBoundary = 2
)

// terrainSurfaces is the palette of the interior/boundary split.
var terrainSurfaces = []fuel.Surface{
	{Index: SurfaceInterior, ID: "terrain", RGB: [3]uint8{122, 117, 48}},
	{Index: SurfaceBoundary, ID: "terrain_edge", RGB: [3]uint8{122, 117, 48}},
}

// nearBoundary reports whether the cell [x1, x2]x[y1, y2] lies within
// buf of any side of the xmax×ymax domain.
func nearBoundary(x1, x2, y1, y2, xmax, ymax, buf float64) bool {
	return abs(x1) < buf || abs(x2-xmax) < buf || abs(y1) < buf || abs(y2-ymax) < buf
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
