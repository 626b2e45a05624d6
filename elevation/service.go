package elevation

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotCovered is returned by PickHeight when no loaded tile owns the
// requested point.
var ErrNotCovered = errors.New("point not covered by any elevation tile")

// HeightRequest contains parameters for height lookup
type HeightRequest struct {
	Lat  float64 // Latitude
	Lon  float64 // Longitude
	Mode Mode    // Interpolation
}

// HeightResult contains the result of height lookup
type HeightResult struct {
	Lat    float64 // Requested latitude
	Lon    float64 // Requested longitude
	Height float64 // Height at the location
	Meta   Meta    // Tile that answered
}

// Meta describes the tile a height was read from.
type Meta struct {
	Tile     string
	Order    int
	Cols     int
	Rows     int
	CellSize float64
}

// PickHeight retrieves elevation at a specific location.
// It is shared by the HTTP handlers and the height command.
func PickHeight(ctx context.Context, ix *Index, req HeightRequest) (HeightResult, error) {
	if ix == nil {
		return HeightResult{}, fmt.Errorf("index is nil")
	}
	if err := ctx.Err(); err != nil {
		return HeightResult{}, err
	}

	t, ok := ix.Resolve(req.Lon, req.Lat)
	if !ok {
		return HeightResult{}, fmt.Errorf("lat=%g lon=%g: %w", req.Lat, req.Lon, ErrNotCovered)
	}
	if _, err := ix.values(t); err != nil {
		return HeightResult{}, fmt.Errorf("height lookup failed: %w", err)
	}

	return HeightResult{
		Lat:    req.Lat,
		Lon:    req.Lon,
		Height: t.sample(req.Lon, req.Lat, req.Mode),
		Meta: Meta{
			Tile:     t.Name,
			Order:    t.order,
			Cols:     t.NCols,
			Rows:     t.NRows,
			CellSize: t.CellSize,
		},
	}, nil
}
