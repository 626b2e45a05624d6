package geodesy

import (
	"errors"
	"testing"

	"github.com/pavletto/demterrain/internal/errs"
)

func centerFrame(t *testing.T) ReferenceFrame {
	t.Helper()
	f, err := ResolveFrame(FrameParams{Mode: ModeCenter, LongRef: -85, LatRef: 35, XMax: 1000, YMax: 1000})
	if err != nil {
		t.Fatalf("ResolveFrame() error = %v", err)
	}
	return f
}

func TestBuildLattice_Counts(t *testing.T) {
	f := centerFrame(t)
	for _, dims := range [][2]int{{2, 2}, {3, 3}, {7, 4}, {4, 7}} {
		l, err := BuildLattice(f, dims[0], dims[1])
		if err != nil {
			t.Fatalf("BuildLattice(%v) error = %v", dims, err)
		}
		if got := len(l.Points()); got != dims[0]*dims[1] {
			t.Errorf("BuildLattice(%v) yields %d points, want %d", dims, got, dims[0]*dims[1])
		}
	}
}

func TestBuildLattice_NorthFirst(t *testing.T) {
	f := centerFrame(t)
	l, err := BuildLattice(f, 4, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, y0 := l.XY(0)
	if y0 != f.YMax {
		t.Errorf("first point y = %v, want YMax %v", y0, f.YMax)
	}
	_, yLast := l.XY(l.Len() - 1)
	if yLast != 0 {
		t.Errorf("last point y = %v, want 0", yLast)
	}

	first := l.At(0)
	last := l.At(l.Len() - 1)
	if first.Lat <= last.Lat {
		t.Errorf("row 0 latitude %v not north of last row %v", first.Lat, last.Lat)
	}
	if first.Lon >= l.At(l.Cols-1).Lon {
		t.Errorf("longitude does not increase along a row")
	}

	// Restartable: the same index always yields the same point.
	if l.At(7) != l.At(7) {
		t.Errorf("At is not deterministic")
	}
}

func TestBuildLattice_Degenerate(t *testing.T) {
	f := centerFrame(t)
	for _, dims := range [][2]int{{1, 5}, {5, 1}, {0, 0}, {-2, 3}} {
		if _, err := BuildLattice(f, dims[0], dims[1]); !errors.Is(err, errs.ErrConfiguration) {
			t.Errorf("BuildLattice(%v) error = %v, want configuration error", dims, err)
		}
	}

	if _, err := BuildLattice(ReferenceFrame{}, 3, 3); !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("BuildLattice(unresolved frame) error = %v, want configuration error", err)
	}
}
