package terrain

import (
	"github.com/pavletto/demterrain/fuel"
	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
)

// Vertex is a mesh point in simulation coordinates.
type Vertex struct {
	X, Y, Z float64
}

// Face is a triangle of zero-based vertex indices and a surface code.
type Face struct {
	V       [3]int
	Surface int
}

// Mesh is a triangulated terrain surface. Vertex k is lattice point k;
// faces come in pairs, one pair per lattice cell, both split along the
// cell's north-west to south-east diagonal.
type Mesh struct {
	Cols     int
	Rows     int
	Vertices []Vertex
	Faces    []Face
	Surfaces []fuel.Surface
}

// surfaceFunc picks the surface code of the cell with north-west corner
// at row r, column c.
type surfaceFunc func(r, c int) int

func buildMesh(g *SampleGrid, surface surfaceFunc, palette []fuel.Surface) *Mesh {
	l := g.Lattice
	m := &Mesh{
		Cols:     g.Cols,
		Rows:     g.Rows,
		Vertices: make([]Vertex, 0, g.Cols*g.Rows),
		Faces:    make([]Face, 0, 2*(g.Cols-1)*(g.Rows-1)),
		Surfaces: palette,
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			m.Vertices = append(m.Vertices, Vertex{X: l.X(c), Y: l.Y(r), Z: g.At(r, c)})
		}
	}

	v := func(c, r int) int { return r*g.Cols + c }
	for r := 0; r < g.Rows-1; r++ {
		for c := 0; c < g.Cols-1; c++ {
			s := surface(r, c)
			m.Faces = append(m.Faces,
				Face{V: [3]int{v(c, r), v(c+1, r+1), v(c+1, r)}, Surface: s},
				Face{V: [3]int{v(c, r), v(c, r+1), v(c+1, r+1)}, Surface: s},
			)
		}
	}
	return m
}

// pairCentroid is the mean of the centroids of the two triangles of the
// cell at (r, c), in planar coordinates.
func (m *Mesh) pairCentroid(r, c int) (x, y float64) {
	k := 2 * (r*(m.Cols-1) + c)
	for _, f := range m.Faces[k : k+2] {
		for _, vi := range f.V {
			x += m.Vertices[vi].X
			y += m.Vertices[vi].Y
		}
	}
	return x / 6, y / 6
}

// fuelSurfaces reassigns every face pair from the fuel grid, read at the
// pair's combined centroid.
func (m *Mesh) fuelSurfaces(frame geodesy.ReferenceFrame, g *fuel.Grid) {
	for r := 0; r < m.Rows-1; r++ {
		for c := 0; c < m.Cols-1; c++ {
			x, y := m.pairCentroid(r, c)
			lon, lat := frame.ToLonLat(x, y)
			s := g.Classify(lon, lat)
			k := 2 * (r*(m.Cols-1) + c)
			m.Faces[k].Surface = s
			m.Faces[k+1].Surface = s
		}
	}
}

// Validate checks the mesh against its own shape: counts, vertex index
// ranges and surface codes.
func (m *Mesh) Validate() error {
	if len(m.Vertices) != m.Cols*m.Rows {
		return errs.Integrityf("%d vertices for a %dx%d grid", len(m.Vertices), m.Cols, m.Rows)
	}
	if want := 2 * (m.Cols - 1) * (m.Rows - 1); len(m.Faces) != want {
		return errs.Integrityf("%d faces, want %d", len(m.Faces), want)
	}
	for i, f := range m.Faces {
		for _, vi := range f.V {
			if vi < 0 || vi >= len(m.Vertices) {
				return errs.Integrityf("face %d references vertex %d of %d", i, vi, len(m.Vertices))
			}
		}
		if f.Surface < 1 || f.Surface > len(m.Surfaces) {
			return errs.Integrityf("face %d has surface %d outside palette of %d", i, f.Surface, len(m.Surfaces))
		}
	}
	return nil
}
