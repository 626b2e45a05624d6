package elevation

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/ctessum/geom"

	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
)

// PayloadSource opens the raw row-major float32 samples of a tile.
type PayloadSource interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the payload from a .flt file.
type FileSource string

func (p FileSource) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

// TileLoadError records why a tile payload could not be loaded.
type TileLoadError struct {
	Tile string
	Err  error
}

func (e *TileLoadError) Error() string {
	return fmt.Sprintf("tile %s: %v", e.Tile, e.Err)
}

func (e *TileLoadError) Unwrap() []error { return []error{errs.ErrTileLoad, e.Err} }

// Tile is one elevation raster. Its metadata is fixed at construction;
// the sample buffer is read from the payload source on first use and
// then kept for the life of the tile.
type Tile struct {
	Header
	bounds geodesy.LonLatBox
	order  int
	src    PayloadSource

	once sync.Once
	done atomic.Bool
	vals []float32
	err  error
}

// NewTile returns a tile whose payload is loaded lazily from src.
func NewTile(h Header, src PayloadSource) (*Tile, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if h.ByteOrder == nil {
		h.ByteOrder = binary.LittleEndian
	}
	return &Tile{Header: h, bounds: h.Bounds(), src: src}, nil
}

// NewMemoryTile returns a tile backed by vals, which must hold
// NRows×NCols samples in row-major, north-to-south order.
func NewMemoryTile(h Header, vals []float32) (*Tile, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if len(vals) != h.NCols*h.NRows {
		return nil, fmt.Errorf("tile %s: %d samples for %dx%d grid", h.Name, len(vals), h.NCols, h.NRows)
	}
	t := &Tile{Header: h, bounds: h.Bounds(), vals: vals}
	t.once.Do(func() { t.done.Store(true) })
	return t, nil
}

// LonLatBounds is the tile extent in degrees.
func (t *Tile) LonLatBounds() geodesy.LonLatBox { return t.bounds }

// Contains reports whether (lon, lat) lies in the tile, edges included.
func (t *Tile) Contains(lon, lat float64) bool { return t.bounds.Contains(lon, lat) }

// Order is the tile's registration order in its index.
func (t *Tile) Order() int { return t.order }

func (t *Tile) geomBounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: t.bounds.LongMin, Y: t.bounds.LatMin},
		Max: geom.Point{X: t.bounds.LongMax, Y: t.bounds.LatMax},
	}
}

// Loaded reports whether the payload has been read successfully.
func (t *Tile) Loaded() bool { return t.done.Load() && t.err == nil }

// Err returns the load error, if a load was attempted and failed.
func (t *Tile) Err() error {
	if !t.done.Load() {
		return nil
	}
	return t.err
}

// load runs the one load attempt and reports whether this call made it.
func (t *Tile) load() (first bool) {
	t.once.Do(func() {
		first = true
		defer t.done.Store(true)
		vals, err := t.read()
		if err != nil {
			t.err = &TileLoadError{Tile: t.Name, Err: err}
			return
		}
		t.vals = vals
	})
	return first
}

func (t *Tile) read() ([]float32, error) {
	if t.src == nil {
		return nil, fmt.Errorf("no payload source")
	}
	rc, err := t.src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	vals := make([]float32, t.NCols*t.NRows)
	if err := binary.Read(bufio.NewReader(rc), t.ByteOrder, vals); err != nil {
		return nil, fmt.Errorf("flt: %w", err)
	}
	return vals, nil
}

// noDataCount counts samples equal to the header's NODATA value.
func (t *Tile) noDataCount() int {
	if t.NoData == nil {
		return 0
	}
	n := 0
	for _, v := range t.vals {
		if v == *t.NoData {
			n++
		}
	}
	return n
}

func (t *Tile) at(row, col int) float64 {
	return float64(t.vals[row*t.NCols+col])
}
