package elevation

import (
	"errors"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/sirupsen/logrus"
)

// LoadHook is called once per tile after its first load attempt.
type LoadHook func(t *Tile, err error)

// Index holds the elevation tiles of one run in discovery order and
// resolves a longitude/latitude to the tile that owns it.
//
// Tiles are not expected to overlap. When they do, the tile registered
// first wins, so output depends on discovery order and nothing else.
type Index struct {
	tiles []*Tile
	tree  *rtree.Rtree

	// Log receives load diagnostics. Defaults to the standard logger.
	Log logrus.FieldLogger
	// OnLoad, if set, is called after each tile's first load attempt.
	OnLoad LoadHook
}

// tileEntry is the rtree record of a tile: its degree bounds plus the
// tile itself.
type tileEntry struct {
	*geom.Bounds
	tile *Tile
}

// NewIndex registers tiles in the given order.
func NewIndex(tiles ...*Tile) *Index {
	ix := &Index{
		tree: rtree.NewTree(25, 50),
		Log:  logrus.StandardLogger(),
	}
	for _, t := range tiles {
		ix.Add(t)
	}
	return ix
}

// Add registers t after all tiles already in the index.
func (ix *Index) Add(t *Tile) {
	t.order = len(ix.tiles)
	ix.tiles = append(ix.tiles, t)
	ix.tree.Insert(tileEntry{Bounds: t.geomBounds(), tile: t})
}

// Tiles returns the registered tiles in registration order.
func (ix *Index) Tiles() []*Tile { return ix.tiles }

// Len is the number of registered tiles.
func (ix *Index) Len() int { return len(ix.tiles) }

// Resolve returns the first-registered tile whose bounds contain
// (lon, lat), edges included.
func (ix *Index) Resolve(lon, lat float64) (*Tile, bool) {
	var best *Tile
	p := geom.Point{X: lon, Y: lat}
	for _, s := range ix.tree.SearchIntersect(p.Bounds()) {
		t := s.(tileEntry).tile
		if !t.Contains(lon, lat) {
			continue
		}
		if best == nil || t.order < best.order {
			best = t
		}
	}
	return best, best != nil
}

// values loads t through the index so hooks and logging fire once per
// tile.
func (ix *Index) values(t *Tile) ([]float32, error) {
	if t.load() {
		ix.loaded(t)
	}
	return t.vals, t.err
}

func (ix *Index) loaded(t *Tile) {
	log := ix.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	fields := logrus.Fields{"tile": t.Name, "cols": t.NCols, "rows": t.NRows}
	if t.err != nil {
		log.WithFields(fields).WithError(t.err).Warn("elevation tile not loaded")
	} else {
		log.WithFields(fields).Debug("elevation tile loaded")
		if n := t.noDataCount(); n > 0 {
			log.WithFields(fields).WithField("nodata", n).Warn("elevation tile has NODATA samples")
		}
	}
	if ix.OnLoad != nil {
		ix.OnLoad(t, t.err)
	}
}

// LoadErrors returns the load failure of every tile that failed so far,
// in registration order.
func (ix *Index) LoadErrors() []error {
	var out []error
	for _, t := range ix.tiles {
		if err := t.Err(); err != nil {
			out = append(out, err)
		}
	}
	return out
}

// LoadError joins LoadErrors into one error, or nil.
func (ix *Index) LoadError() error {
	return errors.Join(ix.LoadErrors()...)
}
