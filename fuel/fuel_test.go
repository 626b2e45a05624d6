package fuel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSurfaceIndex(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{1, 1},
		{13, 13},
		{90, 14},
		{93, 17},
		{98, 18},
		{99, 19},
		{0, 20},
		{14, 20},
		{-9999, 20},
		{9999, 20},
	}
	for _, tt := range tests {
		if got := SurfaceIndex(tt.code); got != tt.want {
			t.Errorf("SurfaceIndex(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCodes(t *testing.T) {
	if Unclassified != 20 {
		t.Errorf("Unclassified = %d, want 20", Unclassified)
	}
	c := Codes()
	if len(c)+1 != Unclassified {
		t.Fatalf("Codes() has %d entries, want %d", len(c), Unclassified-1)
	}
	c[0] = 42
	if SurfaceIndex(1) != 1 || SurfaceIndex(42) != Unclassified {
		t.Error("editing the Codes() result changed the table")
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) != Unclassified {
		t.Fatalf("palette has %d surfaces, want %d", len(p), Unclassified)
	}
	for i, s := range p {
		if s.Index != i+1 {
			t.Errorf("palette[%d].Index = %d", i, s.Index)
		}
		if i < len(codes) && s.Code != codes[i] {
			t.Errorf("palette[%d].Code = %d, want %d", i, s.Code, codes[i])
		}
	}
	if SurfaceFor(0).ID != "unclassified" || SurfaceFor(99).ID != "unclassified" {
		t.Error("out-of-range surface does not resolve to unclassified")
	}
	if SurfaceFor(SurfaceIndex(98)).ID != "nb_water" {
		t.Errorf("SurfaceFor(water) = %+v", SurfaceFor(SurfaceIndex(98)))
	}
}

const sample = `ncols        3
nrows        2
xllcorner    -85
yllcorner    35
cellsize     0.5
NODATA_value -9999
1 2 98
91 7 -9999
`

func TestReadASCII(t *testing.T) {
	g, err := ReadASCII(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadASCII() error = %v", err)
	}
	if g.NCols != 3 || g.NRows != 2 || g.NoData == nil || *g.NoData != -9999 {
		t.Errorf("header = %+v", g)
	}
	b := g.Bounds()
	if b.LongMax != -83.5 || b.LatMax != 36 {
		t.Errorf("Bounds() = %+v", b)
	}

	tests := []struct {
		name     string
		lon, lat float64
		code     int
		surface  int
	}{
		{"north-west cell", -84.9, 35.9, 1, 1},
		{"north-east cell", -83.6, 35.9, 98, 18},
		{"south-middle cell", -84.3, 35.1, 7, 7},
		{"nodata is unclassified", -83.6, 35.1, -9999, 20},
		{"west of grid clamps", -90, 35.9, 1, 1},
		{"south-east of grid clamps", -80, 30, -9999, 20},
		{"north of grid clamps", -84.3, 40, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.SampleFuel(tt.lon, tt.lat); got != tt.code {
				t.Errorf("SampleFuel() = %d, want %d", got, tt.code)
			}
			if got := g.Classify(tt.lon, tt.lat); got != tt.surface {
				t.Errorf("Classify() = %d, want %d", got, tt.surface)
			}
		})
	}
}

func TestReadASCII_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short data", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3\n"},
		{"missing nrows", "ncols 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n"},
		{"no cell size", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\n1\n"},
		{"bad value", "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadASCII(strings.NewReader(tt.src)); err == nil {
				t.Error("ReadASCII() returned no error")
			}
		})
	}
}

func TestReadASCII_SeparateSteps(t *testing.T) {
	g, err := ReadASCII(strings.NewReader("ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ndx 1\ndy 2\n1 2\n3 4"))
	if err != nil {
		t.Fatal(err)
	}
	if b := g.Bounds(); b.LongMax != 2 || b.LatMax != 4 {
		t.Errorf("Bounds() = %+v", b)
	}
	if got := g.SampleFuel(1.5, 0.5); got != 4 {
		t.Errorf("SampleFuel() = %d, want 4", got)
	}
}

func TestReadASCII_Origin(t *testing.T) {
	tests := []struct {
		name            string
		src             string
		longMin, latMin float64
	}{
		{"corner", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n", 0, 0},
		{"center", "ncols 2\nnrows 2\nxllcenter 0.5\nyllcenter 0.5\ncellsize 1\n1 2\n3 4\n", 0, 0},
		{"center before steps", "ncols 2\nnrows 2\nxllcenter 1\nyllcenter 2\ndx 2\ndy 4\n1 2\n3 4\n", 0, 0},
		{"corner wins", "ncols 2\nnrows 2\nxllcorner 0\nxllcenter 5\nyllcenter 5\nyllcorner 0\ncellsize 1\n1 2\n3 4\n", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadASCII(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("ReadASCII() error = %v", err)
			}
			b := g.Bounds()
			if b.LongMin != tt.longMin || b.LatMin != tt.latMin {
				t.Errorf("origin = (%v, %v), want (%v, %v)", b.LongMin, b.LatMin, tt.longMin, tt.latMin)
			}
			// North-west cell holds 1, south-east cell holds 4.
			if got := g.SampleFuel(b.LongMin+0.1, b.LatMax-0.1); got != 1 {
				t.Errorf("SampleFuel(north-west) = %d, want 1", got)
			}
			if got := g.SampleFuel(b.LongMax-0.1, b.LatMin+0.1); got != 4 {
				t.Errorf("SampleFuel(south-east) = %d, want 4", got)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anderson13.asc")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	census := g.Census()
	if census[20] != 1 || census[1] != 1 || census[18] != 1 {
		t.Errorf("Census() = %v", census)
	}
}
