package terrain

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pavletto/demterrain/fuel"
	"github.com/pavletto/demterrain/internal/errs"
	"github.com/pavletto/demterrain/internal/metrics"
)

// Output names a terrain representation.
type Output int

const (
	OutputNone Output = iota
	// OutputMesh is a triangulated surface (FDS GEOM).
	OutputMesh
	// OutputObstructions is a block grid (FDS OBST).
	OutputObstructions
)

func (o Output) String() string {
	switch o {
	case OutputMesh:
		return "geom"
	case OutputObstructions:
		return "obst"
	}
	return "none"
}

// ParseOutput accepts "geom"/"mesh" or "obst"/"obstructions".
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geom", "mesh":
		return OutputMesh, nil
	case "obst", "obstructions", "blocks":
		return OutputObstructions, nil
	}
	return OutputNone, errs.Configf("unknown terrain output %q", s)
}

// Builder carries everything one terrain build needs. It holds no state
// between builds and may be reused.
type Builder struct {
	// Mesh and Obstructions select the output; exactly one must be set.
	Mesh         bool
	Obstructions bool

	Exclusions []ExclusionRegion
	BufferDist float64
	// Fuel, if set, assigns mesh surfaces from fuel models.
	Fuel *fuel.Grid
	// ZMin, ZMax override the derived vertical range when non-nil.
	ZMin, ZMax *float64

	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
}

// Result is a finished terrain. Exactly one of Mesh and Obstructions is
// set.
type Result struct {
	Grid         *SampleGrid
	Range        VerticalRange
	Mesh         *Mesh
	Obstructions *ObstructionGrid
}

// Output reports which representation r holds.
func (r *Result) Output() Output {
	if r.Mesh != nil {
		return OutputMesh
	}
	return OutputObstructions
}

// Surfaces is the palette the result's surface codes index into.
func (r *Result) Surfaces() []fuel.Surface {
	if r.Mesh != nil {
		return r.Mesh.Surfaces
	}
	return r.Obstructions.Surfaces
}

func (b *Builder) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}

// Check validates the output selection. It runs before any sampling in
// Build and may be called earlier by callers that sample themselves.
func (b *Builder) Check() error {
	switch {
	case b.Mesh && b.Obstructions:
		return errs.Configf("mesh and obstruction output are mutually exclusive")
	case !b.Mesh && !b.Obstructions:
		return errs.Configf("no terrain output selected")
	}
	return nil
}

// Build turns a fully covered sample grid into a mesh or an obstruction
// grid.
func (b *Builder) Build(g *SampleGrid) (*Result, error) {
	if err := b.Check(); err != nil {
		return nil, err
	}
	if g == nil || g.Lattice == nil {
		return nil, fmt.Errorf("terrain: nil sample grid")
	}
	if g.Cols < 2 || g.Rows < 2 {
		return nil, errs.Configf("sample grid needs at least 2×2 points, got %d×%d", g.Cols, g.Rows)
	}
	if len(g.Elev) != g.Cols*g.Rows {
		return nil, errs.Integrityf("%d elevations for a %dx%d grid", len(g.Elev), g.Cols, g.Rows)
	}

	start := time.Now()
	res := &Result{Grid: g, Range: g.Range(orDerive(b.ZMin), orDerive(b.ZMax))}
	log := b.log().WithFields(logrus.Fields{"cols": g.Cols, "rows": g.Rows})

	if b.Obstructions {
		res.Obstructions = buildObstructions(g, b.Exclusions, b.BufferDist)
		b.Metrics.ObstructionsBuilt(len(res.Obstructions.Blocks), res.Obstructions.Excluded, time.Since(start))
		log.WithFields(logrus.Fields{
			"blocks":   len(res.Obstructions.Blocks),
			"excluded": res.Obstructions.Excluded,
			"zmin":     res.Range.ZMin,
			"zmax":     res.Range.ZMax,
		}).Info("obstruction grid built")
		return res, nil
	}

	res.Mesh = b.mesh(g)
	if err := res.Mesh.Validate(); err != nil {
		return nil, err
	}
	b.Metrics.MeshBuilt(len(res.Mesh.Faces), time.Since(start))
	log.WithFields(logrus.Fields{
		"vertices": len(res.Mesh.Vertices),
		"faces":    len(res.Mesh.Faces),
		"fuel":     b.Fuel != nil,
		"zmin":     res.Range.ZMin,
		"zmax":     res.Range.ZMax,
	}).Info("terrain mesh built")
	return res, nil
}

func (b *Builder) mesh(g *SampleGrid) *Mesh {
	l := g.Lattice
	if b.Fuel != nil {
		m := buildMesh(g, func(int, int) int { return fuel.Unclassified }, fuel.Palette())
		m.fuelSurfaces(l.Frame, b.Fuel)
		return m
	}
	xmax, ymax := l.Frame.XMax, l.Frame.YMax
	return buildMesh(g, func(r, c int) int {
		if nearBoundary(l.X(c), l.X(c+1), l.Y(r+1), l.Y(r), xmax, ymax, b.BufferDist) {
			return SurfaceBoundary
		}
		return SurfaceInterior
	}, terrainSurfaces)
}

func orDerive(v *float64) float64 {
	if v == nil {
		return DeriveSentinel
	}
	return *v
}
