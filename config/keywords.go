package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
	"github.com/pavletto/demterrain/terrain"
)

// ParseKeywords reads a keyword case: each keyword stands alone on a
// line and its values follow on the next one. Text after "//" is a
// comment. Keywords may appear in any order.
//
//	GRID
//	 nlongs nlats kbar xmax ymax zmin zmax
//	LONGLATCENTER
//	 -85.0 35.0
//	EXCLUDE
//	 xmin ymin xmax ymax
func ParseKeywords(name string, r io.Reader) (Case, error) {
	c := defaultCase(name)
	var modes []string
	var gridXMax, gridYMax = Unset, Unset

	sc := bufio.NewScanner(r)
	line := 0
	next := func(kw string) ([]float64, error) {
		for sc.Scan() {
			line++
			text := stripComment(sc.Text())
			if text == "" {
				continue
			}
			var vals []float64
			for _, f := range strings.Fields(text) {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, errs.Configf("case %s line %d: %s value %q", name, line, kw, f)
				}
				vals = append(vals, v)
			}
			return vals, nil
		}
		return nil, errs.Configf("case %s: %s has no values", name, kw)
	}

	for sc.Scan() {
		line++
		text := stripComment(sc.Text())
		if text == "" {
			continue
		}
		kw := strings.ToUpper(strings.Fields(text)[0])
		var need int
		switch kw {
		case "GRID":
			need = 5
		case "LONGLATORIG", "LONGLATCENTER", "MESH":
			need = 2
		case "LONGLATMINMAX", "EXCLUDE":
			need = 4
		case "BUFF_DIST":
			need = 1
		default:
			// Other dem2fds keywords (image and output options) are
			// not used here.
			continue
		}
		vals, err := next(kw)
		if err != nil {
			return Case{}, err
		}
		if len(vals) < need {
			return Case{}, errs.Configf("case %s line %d: %s needs %d values, got %d", name, line, kw, need, len(vals))
		}

		switch kw {
		case "GRID":
			c.Cols, c.Rows, c.KBar = int(vals[0]), int(vals[1]), int(vals[2])
			gridXMax, gridYMax = vals[3], vals[4]
			if len(vals) > 5 {
				c.ZMin = vals[5]
			}
			if len(vals) > 6 {
				c.ZMax = vals[6]
			}
		case "LONGLATORIG":
			modes = append(modes, kw)
			c.Frame.Mode = geodesy.ModeOrigin
			c.Frame.LongRef, c.Frame.LatRef = vals[0], vals[1]
		case "LONGLATCENTER":
			modes = append(modes, kw)
			c.Frame.Mode = geodesy.ModeCenter
			c.Frame.LongRef, c.Frame.LatRef = vals[0], vals[1]
		case "LONGLATMINMAX":
			modes = append(modes, kw)
			c.Frame.Mode = geodesy.ModeBoundingBox
			c.Frame.Box = geodesy.LonLatBox{LongMin: vals[0], LongMax: vals[1], LatMin: vals[2], LatMax: vals[3]}
		case "MESH":
			c.MeshX, c.MeshY = max(1, int(vals[0])), max(1, int(vals[1]))
		case "EXCLUDE":
			c.Exclusions = append(c.Exclusions, terrain.ExclusionRegion{XMin: vals[0], YMin: vals[1], XMax: vals[2], YMax: vals[3]})
		case "BUFF_DIST":
			c.BufferDist = vals[0]
		}
	}
	if err := sc.Err(); err != nil {
		return Case{}, fmt.Errorf("case %s: %w", name, err)
	}
	if len(modes) > 1 {
		return Case{}, errs.Configf("case %s: reference given more than once (%s)", name, strings.Join(modes, ", "))
	}
	c.Frame.XMax, c.Frame.YMax = gridXMax, gridYMax
	return c, nil
}

func stripComment(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
