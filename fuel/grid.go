// Package fuel reads a fuel-model raster and classifies
// longitude/latitude points into fire-behaviour surface indices.
package fuel

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pavletto/demterrain/geodesy"
)

// Grid is a single integer fuel-model raster, row 0 northernmost. Unlike
// elevation tiles it is read eagerly and only sampled at the nearest cell.
type Grid struct {
	NCols   int
	NRows   int
	LongMin float64
	LatMin  float64
	DLong   float64
	DLat    float64
	NoData  *int

	vals []int
}

// NewGrid builds a grid from row-major, north-to-south codes.
func NewGrid(ncols, nrows int, longMin, latMin, dlong, dlat float64, vals []int) (*Grid, error) {
	g := &Grid{NCols: ncols, NRows: nrows, LongMin: longMin, LatMin: latMin, DLong: dlong, DLat: dlat, vals: vals}
	if err := g.validate(); err != nil {
		return nil, err
	}
	if len(vals) != ncols*nrows {
		return nil, fmt.Errorf("fuel grid: %d values for %dx%d", len(vals), ncols, nrows)
	}
	return g, nil
}

func (g *Grid) validate() error {
	if g.NCols <= 0 || g.NRows <= 0 {
		return fmt.Errorf("fuel grid: size %dx%d", g.NCols, g.NRows)
	}
	if !(g.DLong > 0) || !(g.DLat > 0) {
		return fmt.Errorf("fuel grid: cell size %gx%g", g.DLong, g.DLat)
	}
	return nil
}

// Bounds is the raster extent in degrees.
func (g *Grid) Bounds() geodesy.LonLatBox {
	return geodesy.LonLatBox{
		LongMin: g.LongMin,
		LongMax: g.LongMin + float64(g.NCols)*g.DLong,
		LatMin:  g.LatMin,
		LatMax:  g.LatMin + float64(g.NRows)*g.DLat,
	}
}

// SampleFuel returns the fuel-model code of the cell nearest (lon, lat).
// Points off the raster clamp to its edge.
func (g *Grid) SampleFuel(lon, lat float64) int {
	b := g.Bounds()
	ix := clampIndex(float64(g.NCols)*(lon-b.LongMin)/(b.LongMax-b.LongMin), g.NCols)
	iy := clampIndex(float64(g.NRows)*(b.LatMax-lat)/(b.LatMax-b.LatMin), g.NRows)
	return g.vals[iy*g.NCols+ix]
}

// Classify returns the surface index of the fuel at (lon, lat).
func (g *Grid) Classify(lon, lat float64) int {
	return SurfaceIndex(g.SampleFuel(lon, lat))
}

// Census counts cells per surface index.
func (g *Grid) Census() map[int]int {
	out := map[int]int{}
	for _, v := range g.vals {
		out[SurfaceIndex(v)]++
	}
	return out
}

func clampIndex(f float64, n int) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > float64(n-1) {
		return n - 1
	}
	return int(f)
}

// ReadASCII parses an ESRI ASCII integer grid. The header is the run of
// "key value" lines before the first numeric line; cellsize may be given
// as a single cellsize or as separate dx and dy, and the origin as
// xllcorner/yllcorner or xllcenter/yllcenter.
func ReadASCII(r io.Reader) (*Grid, error) {
	var g Grid
	seen := map[string]bool{}

	br := bufio.NewReader(r)
	var first []string
	for {
		line, err := br.ReadString('\n')
		fields := strings.Fields(line)
		if len(fields) > 0 {
			if isNumber(fields[0]) {
				first = fields
				break
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("fuel grid: header line %q", strings.TrimSpace(line))
			}
			key := strings.ToLower(fields[0])
			if corner := strings.Replace(key, "center", "corner", 1); corner != key && seen[corner] {
				continue
			}
			if perr := g.setHeader(key, fields[1]); perr != nil {
				return nil, fmt.Errorf("fuel grid: %s: %w", fields[0], perr)
			}
			seen[key] = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fuel grid: %w", err)
		}
	}

	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner"} {
		if !seen[k] && !seen[strings.Replace(k, "corner", "center", 1)] {
			return nil, fmt.Errorf("fuel grid: missing %s", k)
		}
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	// The center form places the origin on the lower-left cell's center.
	if seen["xllcenter"] && !seen["xllcorner"] {
		g.LongMin -= g.DLong / 2
	}
	if seen["yllcenter"] && !seen["yllcorner"] {
		g.LatMin -= g.DLat / 2
	}

	n := g.NCols * g.NRows
	g.vals = make([]int, 0, n)
	add := func(tok string) error {
		v, err := parseCode(tok)
		if err != nil {
			return fmt.Errorf("fuel grid: value %d: %w", len(g.vals), err)
		}
		g.vals = append(g.vals, v)
		return nil
	}
	for _, tok := range first {
		if err := add(tok); err != nil {
			return nil, err
		}
	}
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	for sc.Scan() && len(g.vals) < n {
		if err := add(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fuel grid: %w", err)
	}
	if len(g.vals) < n {
		return nil, fmt.Errorf("fuel grid: %d of %d values", len(g.vals), n)
	}
	g.vals = g.vals[:n]
	return &g, nil
}

func (g *Grid) setHeader(key, val string) error {
	var err error
	switch key {
	case "ncols":
		g.NCols, err = strconv.Atoi(val)
	case "nrows":
		g.NRows, err = strconv.Atoi(val)
	case "xllcorner", "xllcenter":
		g.LongMin, err = strconv.ParseFloat(val, 64)
	case "yllcorner", "yllcenter":
		g.LatMin, err = strconv.ParseFloat(val, 64)
	case "cellsize":
		g.DLong, err = strconv.ParseFloat(val, 64)
		g.DLat = g.DLong
	case "dx":
		g.DLong, err = strconv.ParseFloat(val, 64)
	case "dy":
		g.DLat, err = strconv.ParseFloat(val, 64)
	case "nodata_value":
		var nd int
		nd, err = parseCode(val)
		g.NoData = &nd
	}
	return err
}

func parseCode(tok string) (int, error) {
	if v, err := strconv.Atoi(tok); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

func isNumber(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// ReadFile reads the grid at path.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadASCII(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
