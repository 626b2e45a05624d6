// Package fds writes a built terrain as a Fire Dynamics Simulator input
// file.
package fds

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/terrain"
)

// Case is what the writer needs beyond the terrain itself.
type Case struct {
	// CHID is the FDS job id, usually the case name.
	CHID   string
	Source string
	Frame  geodesy.ReferenceFrame
	KBar   int
	MeshX  int
	MeshY  int
}

// errWriter keeps the first write error so the record code stays flat.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Write emits the input file for res: the HEAD, MESH, MISC, TIME and
// VENT records, the terrain as GEOM or OBST records, then TAIL.
func Write(w io.Writer, c Case, res *terrain.Result) error {
	if res == nil || res.Grid == nil {
		return fmt.Errorf("fds: nothing to write")
	}
	ew := &errWriter{w: bufio.NewWriter(w)}
	writeHeader(ew, c, res)
	if res.Mesh != nil {
		writeGeom(ew, c, res)
	} else {
		writeObst(ew, res.Obstructions)
	}
	ew.printf("\n&TAIL /\n")
	if ew.err != nil {
		return fmt.Errorf("fds: %w", ew.err)
	}
	return ew.w.Flush()
}

// WriteFile writes the input file to path.
func WriteFile(path string, c Case, res *terrain.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, c, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHeader(ew *errWriter, c Case, res *terrain.Result) {
	g := res.Grid
	ew.printf("&HEAD CHID='%s', TITLE='created from %s' /\n", c.CHID, c.Source)

	nx, ny := max(1, c.MeshX), max(1, c.MeshY)
	xs := splits(c.Frame.XMax, nx)
	ys := splits(c.Frame.YMax, ny)
	ibar := max(1, (g.Cols-1)/nx)
	jbar := max(1, (g.Rows-1)/ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			ew.printf("&MESH IJK = %d, %d, %d, XB = %f, %f, %f, %f, %f, %f /\n",
				ibar, jbar, c.KBar, xs[i], xs[i+1], ys[j], ys[j+1], res.Range.ZMin, res.Range.ZMax)
		}
	}

	ew.printf("&MISC TERRAIN_CASE = .TRUE. /\n")
	ew.printf("&TIME T_END = 0.0 /\n")
	for _, mb := range []string{"XMIN", "XMAX", "YMIN", "YMAX", "ZMAX"} {
		ew.printf("&VENT MB = '%s', SURF_ID = 'OPEN' /\n", mb)
	}
	ew.printf("\nTerrain Geometry\n\n")
}

// splits divides [0, total] into n equal parts, pinning the last edge.
func splits(total float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := 1; i < n; i++ {
		out[i] = total * float64(i) / float64(n)
	}
	out[n] = total
	return out
}

func writeGeom(ew *errWriter, c Case, res *terrain.Result) {
	m := res.Mesh
	b := c.Frame.Bounds
	ew.printf(" LONGMIN=%f LONGMAX=%f\n", b.LongMin, b.LongMax)
	ew.printf(" LATMIN=%f LATMAX=%f\n", b.LatMin, b.LatMax)
	ew.printf(" ZMIN=%f ZMAX=%f\n", res.Range.ElevMin, res.Range.ElevMax)

	ids := make([]string, len(m.Surfaces))
	for i, s := range m.Surfaces {
		ew.printf("&SURF ID = '%s', RGB = %d,%d,%d /\n", s.ID, s.RGB[0], s.RGB[1], s.RGB[2])
		ids[i] = "'" + s.ID + "'"
	}
	ew.printf("&GEOM ID='terrain', IS_TERRAIN=T, SURF_ID=%s,\n", strings.Join(ids, ","))

	ew.printf("  VERTS=\n")
	for i, v := range m.Vertices {
		ew.printf(" %f,%f,%f,", v.X, v.Y, v.Z)
		if (i+1)%3 == 0 {
			ew.printf("\n")
		}
	}
	ew.printf("\n  FACES=\n")
	for i, f := range m.Faces {
		// FDS vertex indices are one-based.
		ew.printf(" %d,%d,%d,%d", f.V[0]+1, f.V[1]+1, f.V[2]+1, f.Surface)
		if i != len(m.Faces)-1 {
			ew.printf(",")
		}
		if (i+1)%6 == 0 {
			ew.printf("\n")
		}
	}
	ew.printf(" /\n")
}

func writeObst(ew *errWriter, og *terrain.ObstructionGrid) {
	for _, s := range og.Surfaces {
		ew.printf("&SURF ID = '%s', RGB = %d,%d,%d /\n", s.ID, s.RGB[0], s.RGB[1], s.RGB[2])
	}
	for _, blk := range og.Blocks {
		id := og.Surfaces[blk.Surface-1].ID
		ew.printf("&OBST XB=%f,%f,%f,%f,0.0,%f SURF_ID='%s' /\n", blk.X1, blk.X2, blk.Y1, blk.Y2, blk.Height, id)
	}
}
