package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
	"github.com/pavletto/demterrain/terrain"
)

const keywordCase = `// test case
GRID
 50 40 20 1000.0 800.0 -1000.0 -1000.0

MESH
 2 1

EXCLUDE   // lake
 100 100 200 300
EXCLUDE
 400 400 500 500
BUFF_DIST
 25.0
LONGLATCENTER
 -85.0 35.0
`

func TestParseKeywords(t *testing.T) {
	c, err := ParseKeywords("case", strings.NewReader(keywordCase))
	if err != nil {
		t.Fatalf("ParseKeywords() error = %v", err)
	}
	if c.Cols != 50 || c.Rows != 40 || c.KBar != 20 {
		t.Errorf("grid = %dx%dx%d", c.Cols, c.Rows, c.KBar)
	}
	if c.Frame.Mode != geodesy.ModeCenter || c.Frame.LongRef != -85 || c.Frame.LatRef != 35 {
		t.Errorf("frame = %+v", c.Frame)
	}
	if c.Frame.XMax != 1000 || c.Frame.YMax != 800 {
		t.Errorf("extents = %v x %v", c.Frame.XMax, c.Frame.YMax)
	}
	if c.MeshX != 2 || c.MeshY != 1 || c.BufferDist != 25 {
		t.Errorf("mesh = %dx%d buffer = %v", c.MeshX, c.MeshY, c.BufferDist)
	}
	want := []terrain.ExclusionRegion{{XMin: 100, YMin: 100, XMax: 200, YMax: 300}, {XMin: 400, YMin: 400, XMax: 500, YMax: 500}}
	if len(c.Exclusions) != 2 || c.Exclusions[0] != want[0] || c.Exclusions[1] != want[1] {
		t.Errorf("exclusions = %v, want %v", c.Exclusions, want)
	}
	if zmin, zmax := c.ZOverride(); zmin != nil || zmax != nil {
		t.Errorf("ZOverride() = %v, %v, want derived", zmin, zmax)
	}
	if _, err := c.Resolve(); err != nil {
		t.Errorf("Resolve() error = %v", err)
	}
}

func TestParseKeywords_OrderIndependent(t *testing.T) {
	reordered := "LONGLATORIG\n -85 35\nGRID\n 10 10 5 500 500 0 300\n"
	c, err := ParseKeywords("case", strings.NewReader(reordered))
	if err != nil {
		t.Fatal(err)
	}
	if c.Frame.Mode != geodesy.ModeOrigin || c.Frame.XMax != 500 {
		t.Errorf("frame = %+v", c.Frame)
	}
	zmin, zmax := c.ZOverride()
	if zmin == nil || *zmin != 0 || zmax == nil || *zmax != 300 {
		t.Errorf("ZOverride() = %v, %v, want 0, 300", zmin, zmax)
	}
}

func TestParseKeywords_BoundingBox(t *testing.T) {
	c, err := ParseKeywords("case", strings.NewReader("GRID\n 10 10 5 0 0\nLONGLATMINMAX\n -85.1 -84.9 34.9 35.1\n"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if f.Mode != geodesy.ModeBoundingBox || !(f.XMax > 0) || !(f.YMax > 0) {
		t.Errorf("frame = %+v", f)
	}
}

func TestParseKeywords_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"two references", "GRID\n 10 10 5 100 100\nLONGLATORIG\n -85 35\nLONGLATCENTER\n -85 35\n"},
		{"short grid", "GRID\n 10 10\nLONGLATORIG\n -85 35\n"},
		{"bad number", "GRID\n 10 ten 5 100 100\n"},
		{"dangling keyword", "GRID\n 10 10 5 100 100\nLONGLATCENTER\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseKeywords("case", strings.NewReader(tt.src)); !errors.Is(err, errs.ErrConfiguration) {
				t.Errorf("ParseKeywords() error = %v, want configuration error", err)
			}
		})
	}
}

func TestCase_Validate(t *testing.T) {
	base := func() Case {
		c := defaultCase("case")
		c.Frame = geodesy.FrameParams{Mode: geodesy.ModeCenter, LongRef: -85, LatRef: 35, XMax: 100, YMax: 100}
		return c
	}
	tests := []struct {
		name   string
		mutate func(*Case)
	}{
		{"no reference", func(c *Case) { c.Frame.Mode = geodesy.ModeNone }},
		{"one column", func(c *Case) { c.Cols = 1 }},
		{"zero kbar", func(c *Case) { c.KBar = 0 }},
		{"zero mesh", func(c *Case) { c.MeshY = 0 }},
		{"negative buffer", func(c *Case) { c.BufferDist = -1 }},
		{"inverted exclusion", func(c *Case) {
			c.Exclusions = []terrain.ExclusionRegion{{XMin: 10, XMax: 5, YMin: 0, YMax: 1}}
		}},
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("Validate(base) error = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, errs.ErrConfiguration) {
				t.Errorf("Validate() error = %v, want configuration error", err)
			}
		})
	}
}

const tomlSource = `
longlat_center = [-85.0, 35.0]
buffer_dist = 10.0
mesh = [2, 2]

[grid]
cols = 30
rows = 20
xmax = 1000.0
ymax = 800.0
zmax = 900.0

[[exclude]]
xmin = 1.0
ymin = 2.0
xmax = 3.0
ymax = 4.0
`

func TestParseTOML(t *testing.T) {
	c, err := ParseTOML("case", strings.NewReader(tomlSource))
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	if c.Cols != 30 || c.Rows != 20 || c.KBar != 10 {
		t.Errorf("grid = %dx%dx%d", c.Cols, c.Rows, c.KBar)
	}
	if c.Frame.Mode != geodesy.ModeCenter || c.Frame.XMax != 1000 || c.Frame.YMax != 800 {
		t.Errorf("frame = %+v", c.Frame)
	}
	zmin, zmax := c.ZOverride()
	if zmin != nil || zmax == nil || *zmax != 900 {
		t.Errorf("ZOverride() = %v, %v", zmin, zmax)
	}
	if len(c.Exclusions) != 1 || c.Exclusions[0].YMax != 4 {
		t.Errorf("exclusions = %v", c.Exclusions)
	}
	if c.MeshX != 2 || c.BufferDist != 10 {
		t.Errorf("mesh = %d buffer = %v", c.MeshX, c.BufferDist)
	}
}

func TestParseTOML_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"two references", "longlat_center = [-85.0, 35.0]\nlonglat_origin = [-85.0, 35.0]\n"},
		{"unknown key", "longlat_center = [-85.0, 35.0]\ncolour = 'red'\n"},
		{"short box", "longlat_minmax = [1.0, 2.0]\n"},
		{"syntax", "[grid\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTOML("case", strings.NewReader(tt.src)); !errors.Is(err, errs.ErrConfiguration) {
				t.Errorf("ParseTOML() error = %v, want configuration error", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	kw := filepath.Join(dir, "hill.in")
	if err := os.WriteFile(kw, []byte(keywordCase), 0o644); err != nil {
		t.Fatal(err)
	}
	tm := filepath.Join(dir, "hill.toml")
	if err := os.WriteFile(tm, []byte(tomlSource), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{kw, tm} {
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if c.Name != "hill" || c.Frame.Mode != geodesy.ModeCenter {
			t.Errorf("Load(%s) = %+v", path, c)
		}
	}

	missingRef := filepath.Join(dir, "noref.in")
	if err := os.WriteFile(missingRef, []byte("GRID\n 10 10 5 100 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(missingRef); !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("Load(no reference) error = %v, want configuration error", err)
	}
}
