package config

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
	"github.com/pavletto/demterrain/terrain"
)

// tomlCase mirrors the keyword format:
//
//	[grid]
//	cols = 100
//	rows = 100
//	kbar = 10
//	xmax = 1000.0
//	ymax = 1000.0
//
//	longlat_center = [-85.0, 35.0]
//	buffer_dist = 5.0
//	mesh = [2, 2]
//
//	[[exclude]]
//	xmin = 100.0
//	ymin = 100.0
//	xmax = 200.0
//	ymax = 200.0
type tomlCase struct {
	Grid struct {
		Cols int      `toml:"cols"`
		Rows int      `toml:"rows"`
		KBar int      `toml:"kbar"`
		XMax float64  `toml:"xmax"`
		YMax float64  `toml:"ymax"`
		ZMin *float64 `toml:"zmin"`
		ZMax *float64 `toml:"zmax"`
	} `toml:"grid"`

	Origin     []float64 `toml:"longlat_origin"`
	Center     []float64 `toml:"longlat_center"`
	MinMax     []float64 `toml:"longlat_minmax"`
	BufferDist float64   `toml:"buffer_dist"`
	Mesh       []int     `toml:"mesh"`

	Exclude []struct {
		XMin float64 `toml:"xmin"`
		YMin float64 `toml:"ymin"`
		XMax float64 `toml:"xmax"`
		YMax float64 `toml:"ymax"`
	} `toml:"exclude"`
}

// ParseTOML reads a TOML case. Unknown keys are rejected.
func ParseTOML(name string, r io.Reader) (Case, error) {
	var tc tomlCase
	md, err := toml.NewDecoder(r).Decode(&tc)
	if err != nil {
		return Case{}, errs.Configf("case %s: %v", name, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return Case{}, errs.Configf("case %s: unknown keys %s", name, strings.Join(keys, ", "))
	}

	c := defaultCase(name)
	if md.IsDefined("grid", "cols") {
		c.Cols = tc.Grid.Cols
	}
	if md.IsDefined("grid", "rows") {
		c.Rows = tc.Grid.Rows
	}
	if md.IsDefined("grid", "kbar") {
		c.KBar = tc.Grid.KBar
	}
	if tc.Grid.ZMin != nil {
		c.ZMin = *tc.Grid.ZMin
	}
	if tc.Grid.ZMax != nil {
		c.ZMax = *tc.Grid.ZMax
	}
	c.BufferDist = tc.BufferDist
	if tc.Mesh != nil {
		if len(tc.Mesh) != 2 {
			return Case{}, errs.Configf("case %s: mesh needs 2 values, got %d", name, len(tc.Mesh))
		}
		c.MeshX, c.MeshY = tc.Mesh[0], tc.Mesh[1]
	}
	for _, e := range tc.Exclude {
		c.Exclusions = append(c.Exclusions, terrain.ExclusionRegion{XMin: e.XMin, YMin: e.YMin, XMax: e.XMax, YMax: e.YMax})
	}

	var modes []string
	if tc.Origin != nil {
		modes = append(modes, "longlat_origin")
		if len(tc.Origin) != 2 {
			return Case{}, errs.Configf("case %s: longlat_origin needs 2 values", name)
		}
		c.Frame.Mode = geodesy.ModeOrigin
		c.Frame.LongRef, c.Frame.LatRef = tc.Origin[0], tc.Origin[1]
	}
	if tc.Center != nil {
		modes = append(modes, "longlat_center")
		if len(tc.Center) != 2 {
			return Case{}, errs.Configf("case %s: longlat_center needs 2 values", name)
		}
		c.Frame.Mode = geodesy.ModeCenter
		c.Frame.LongRef, c.Frame.LatRef = tc.Center[0], tc.Center[1]
	}
	if tc.MinMax != nil {
		modes = append(modes, "longlat_minmax")
		if len(tc.MinMax) != 4 {
			return Case{}, errs.Configf("case %s: longlat_minmax needs 4 values", name)
		}
		c.Frame.Mode = geodesy.ModeBoundingBox
		c.Frame.Box = geodesy.LonLatBox{LongMin: tc.MinMax[0], LongMax: tc.MinMax[1], LatMin: tc.MinMax[2], LatMax: tc.MinMax[3]}
	}
	if len(modes) > 1 {
		return Case{}, errs.Configf("case %s: reference given more than once (%s)", name, strings.Join(modes, ", "))
	}
	c.Frame.XMax, c.Frame.YMax = tc.Grid.XMax, tc.Grid.YMax
	return c, nil
}
