package geodesy

import "github.com/pavletto/demterrain/internal/errs"

// LonLat is a longitude/latitude pair in degrees.
type LonLat struct {
	Lon, Lat float64
}

// Lattice is a Cols×Rows grid of planar points spanning the frame's
// domain. Points are ordered row-major with row 0 on the northern edge
// (y = YMax), matching north-to-south raster order. Points are computed
// on demand; a Lattice holds no per-point state.
type Lattice struct {
	Frame ReferenceFrame
	Cols  int
	Rows  int
	DX    float64
	DY    float64
}

// BuildLattice returns the cols×rows lattice over f. At least two points
// per axis are needed to define a cell width.
func BuildLattice(f ReferenceFrame, cols, rows int) (*Lattice, error) {
	if cols < 2 || rows < 2 {
		return nil, errs.Configf("lattice needs at least 2×2 points, got %d×%d", cols, rows)
	}
	if !(f.XMax > 0) || !(f.YMax > 0) {
		return nil, errs.Configf("frame is not resolved (xmax=%g ymax=%g)", f.XMax, f.YMax)
	}
	return &Lattice{
		Frame: f,
		Cols:  cols,
		Rows:  rows,
		DX:    f.XMax / float64(cols-1),
		DY:    f.YMax / float64(rows-1),
	}, nil
}

// Len is the number of lattice points.
func (l *Lattice) Len() int { return l.Cols * l.Rows }

// X returns the planar x of column c. The last column is pinned to XMax.
func (l *Lattice) X(c int) float64 {
	if c == l.Cols-1 {
		return l.Frame.XMax
	}
	return float64(c) * l.DX
}

// Y returns the planar y of row r, counted down from YMax. The last row
// is pinned to 0.
func (l *Lattice) Y(r int) float64 {
	if r == l.Rows-1 {
		return 0
	}
	return l.Frame.YMax - float64(r)*l.DY
}

// XY returns the planar coordinates of point k.
func (l *Lattice) XY(k int) (x, y float64) {
	return l.X(k % l.Cols), l.Y(k / l.Cols)
}

// At returns the longitude/latitude of point k.
func (l *Lattice) At(k int) LonLat {
	x, y := l.XY(k)
	lon, lat := l.Frame.ToLonLat(x, y)
	return LonLat{Lon: lon, Lat: lat}
}

// Points materializes the whole lattice.
func (l *Lattice) Points() []LonLat {
	out := make([]LonLat, l.Len())
	for k := range out {
		out[k] = l.At(k)
	}
	return out
}
