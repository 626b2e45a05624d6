package elevation

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how a height is read from a tile.
type Mode int

const (
	// Bilinear blends the four samples around the query.
	Bilinear Mode = iota
	// Nearest takes the single cell under the query.
	Nearest
)

func (m Mode) String() string {
	if m == Nearest {
		return "nearest"
	}
	return "bilinear"
}

// ParseMode accepts "bilinear" or "nearest", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bilinear", "interp":
		return Bilinear, nil
	case "nearest", "cell":
		return Nearest, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

// Sample resolves (lon, lat) to its tile and reads the elevation there.
// The first read of a tile loads its payload; a failed load leaves the
// point uncovered and is kept for LoadErrors.
func (ix *Index) Sample(lon, lat float64, mode Mode) (float64, bool) {
	t, ok := ix.Resolve(lon, lat)
	if !ok {
		return 0, false
	}
	if _, err := ix.values(t); err != nil {
		return 0, false
	}
	return t.sample(lon, lat, mode), true
}

// sample reads a loaded tile. Fractional indices are measured from the
// west edge and the north edge; row 0 is the northernmost row.
//
// Neighbour indices are clamped independently, so a query on the last
// column or row reuses the edge sample instead of reaching into the next
// tile. Adjacent tiles are not blended and seams at tile joins remain.
func (t *Tile) sample(lon, lat float64, mode Mode) float64 {
	b := t.bounds
	cs := t.CellSize
	colF := (lon - b.LongMin) / cs
	rowF := (b.LatMax - lat) / cs

	col := int(clampF(colF, 0, float64(t.NCols-1)))
	row := int(clampF(rowF, 0, float64(t.NRows-1)))
	p00 := t.at(row, col)
	if mode == Nearest {
		return p00
	}

	col1 := clampI(col+1, 0, t.NCols-1)
	rowUp := clampI(row-1, 0, t.NRows-1)
	p01 := t.at(row, col1)
	p10 := t.at(rowUp, col)
	p11 := t.at(rowUp, col1)

	fx := clampF(colF-float64(col), 0, 1)
	fy := clampF(rowF-float64(row), 0, 1)

	a := lerp(p00, p01, fx)
	c := lerp(p10, p11, fx)
	return lerp(a, c, fy)
}

// lerp is exact at t = 0 and when a == b.
func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
