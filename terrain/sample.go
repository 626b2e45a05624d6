// Package terrain turns sampled elevations into the two terrain outputs
// of a fire simulation case: a triangulated surface mesh or a grid of
// obstruction blocks.
package terrain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pavletto/demterrain/elevation"
	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
	"github.com/pavletto/demterrain/internal/metrics"
)

// SampleGrid holds one elevation per lattice point, in lattice order
// (row 0 north).
type SampleGrid struct {
	Lattice *geodesy.Lattice
	Cols    int
	Rows    int
	Elev    []float64
}

// At returns the elevation of row r, column c.
func (g *SampleGrid) At(r, c int) float64 { return g.Elev[r*g.Cols+c] }

// Gap is a lattice point with no elevation.
type Gap struct {
	Row, Col int
	Lon, Lat float64
	// Tile names the owning tile when the point was in bounds but the
	// tile failed to load.
	Tile string
}

// CoverageError lists every lattice point that could not be sampled,
// with the bounds of every known tile for diagnosis.
type CoverageError struct {
	Gaps  []Gap
	Tiles []geodesy.LonLatBox
	// Load joins the load failures of tiles that were hit, if any.
	Load error
}

func (e *CoverageError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of the lattice points are not covered by elevation data", len(e.Gaps))
	const show = 5
	for i, g := range e.Gaps {
		if i == show {
			fmt.Fprintf(&b, "; ...")
			break
		}
		fmt.Fprintf(&b, "; row %d col %d (lon %.6f, lat %.6f)", g.Row, g.Col, g.Lon, g.Lat)
	}
	if e.Load != nil {
		fmt.Fprintf(&b, "; %v", e.Load)
	}
	return b.String()
}

func (e *CoverageError) Unwrap() []error {
	if e.Load == nil {
		return []error{errs.ErrCoverage}
	}
	return []error{errs.ErrCoverage, e.Load}
}

// SampleOptions tunes Sample.
type SampleOptions struct {
	Mode elevation.Mode
	// Workers > 1 fills rows in parallel. Each row is written by one
	// worker only.
	Workers int
	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
}

// Sample reads an elevation for every point of l from ix.
//
// A coverage pass runs first and reports every point outside all tile
// bounds at once, without loading any payload. Points that are in bounds
// but whose tile fails to load are collected during the fill and fail
// the call the same way.
func Sample(l *geodesy.Lattice, ix *elevation.Index, opts SampleOptions) (*SampleGrid, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if gaps := coverageGaps(l, ix); len(gaps) > 0 {
		opts.Metrics.Gaps(len(gaps))
		return nil, newCoverageError(gaps, ix, nil)
	}

	g := &SampleGrid{Lattice: l, Cols: l.Cols, Rows: l.Rows, Elev: make([]float64, l.Len())}
	rowGaps := make([][]Gap, l.Rows)
	fill := func(r int) {
		for c := 0; c < l.Cols; c++ {
			k := r*l.Cols + c
			p := l.At(k)
			v, ok := ix.Sample(p.Lon, p.Lat, opts.Mode)
			if !ok {
				gap := Gap{Row: r, Col: c, Lon: p.Lon, Lat: p.Lat}
				if t, found := ix.Resolve(p.Lon, p.Lat); found {
					gap.Tile = t.Name
				}
				rowGaps[r] = append(rowGaps[r], gap)
				continue
			}
			g.Elev[k] = v
		}
	}

	workers := opts.Workers
	if workers > l.Rows {
		workers = l.Rows
	}
	if workers <= 1 {
		for r := 0; r < l.Rows; r++ {
			fill(r)
		}
	} else {
		rows := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for r := range rows {
					fill(r)
				}
			}()
		}
		for r := 0; r < l.Rows; r++ {
			rows <- r
		}
		close(rows)
		wg.Wait()
	}

	var gaps []Gap
	for _, rg := range rowGaps {
		gaps = append(gaps, rg...)
	}
	opts.Metrics.Sampled(l.Len() - len(gaps))
	if len(gaps) > 0 {
		opts.Metrics.Gaps(len(gaps))
		return nil, newCoverageError(gaps, ix, ix.LoadError())
	}

	log.WithFields(logrus.Fields{
		"cols": l.Cols, "rows": l.Rows, "interp": opts.Mode.String(), "workers": workers,
	}).Info("elevations sampled")
	return g, nil
}

func coverageGaps(l *geodesy.Lattice, ix *elevation.Index) []Gap {
	var gaps []Gap
	for k := 0; k < l.Len(); k++ {
		p := l.At(k)
		if _, ok := ix.Resolve(p.Lon, p.Lat); !ok {
			gaps = append(gaps, Gap{Row: k / l.Cols, Col: k % l.Cols, Lon: p.Lon, Lat: p.Lat})
		}
	}
	return gaps
}

func newCoverageError(gaps []Gap, ix *elevation.Index, load error) *CoverageError {
	e := &CoverageError{Gaps: gaps, Load: load}
	for _, t := range ix.Tiles() {
		e.Tiles = append(e.Tiles, t.LonLatBounds())
	}
	return e
}
