package elevation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// TileMeta describes the answering tile in a HeightResponse.
type TileMeta struct {
	Name     string  `json:"name"`
	Order    int     `json:"order"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	CellSize float64 `json:"cellsize"`
}

// HeightResponse is the JSON body of HandleHeight.
type HeightResponse struct {
	Lat    float64  `json:"lat"`
	Lon    float64  `json:"lon"`
	Height float64  `json:"height"`
	Interp string   `json:"interp"`
	Tile   TileMeta `json:"tile"`
}

// TileInfo is one entry of HandleTiles.
type TileInfo struct {
	Name    string  `json:"name"`
	Order   int     `json:"order"`
	LongMin float64 `json:"long_min"`
	LongMax float64 `json:"long_max"`
	LatMin  float64 `json:"lat_min"`
	LatMax  float64 `json:"lat_max"`
	Loaded  bool    `json:"loaded"`
	Error   string  `json:"error,omitempty"`
}

type Server struct {
	Index *Index
}

func (s *Server) HandleHeight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		http.Error(w, "invalid lat", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		http.Error(w, "invalid lon", http.StatusBadRequest)
		return
	}
	mode, err := ParseMode(q.Get("interp"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := HeightRequest{
		Lat:  lat,
		Lon:  lon,
		Mode: mode,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := PickHeight(ctx, s.Index, req)
	if errors.Is(err, ErrNotCovered) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := HeightResponse{
		Lat:    result.Lat,
		Lon:    result.Lon,
		Height: result.Height,
		Interp: mode.String(),
		Tile: TileMeta{
			Name:     result.Meta.Tile,
			Order:    result.Meta.Order,
			Cols:     result.Meta.Cols,
			Rows:     result.Meta.Rows,
			CellSize: result.Meta.CellSize,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleTiles lists the registered tiles in registration order. Load
// state is only known for tiles that have been sampled.
func (s *Server) HandleTiles(w http.ResponseWriter, _ *http.Request) {
	tiles := s.Index.Tiles()
	out := make([]TileInfo, 0, len(tiles))
	for _, t := range tiles {
		b := t.LonLatBounds()
		info := TileInfo{
			Name:    t.Name,
			Order:   t.Order(),
			LongMin: b.LongMin,
			LongMax: b.LongMax,
			LatMin:  b.LatMin,
			LatMax:  b.LatMax,
			Loaded:  t.Loaded(),
		}
		if err := t.Err(); err != nil {
			info.Error = err.Error()
		}
		out = append(out, info)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
