package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pavletto/demterrain/elevation"
	"github.com/pavletto/demterrain/internal/metrics"
)

// heightCmd represents the height command
var heightCmd = &cobra.Command{
	Use:   "height",
	Short: "Get terrain elevation at a location",
	Long: `Get terrain elevation at a geographic coordinate from the tiles in
--elev-dir.

Examples:
  demterrain height --lat 34.85 --lon -85.1
  demterrain height --lat 34.85 --lon -85.1 --interp nearest --elev-dir ./dem`,
	Run: func(cmd *cobra.Command, args []string) {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")

		if lat < -90 || lat > 90 {
			logrus.Fatal("latitude must be between -90 and 90")
		}
		if lon < -180 || lon > 180 {
			logrus.Fatal("longitude must be between -180 and 180")
		}

		cfg, err := LoadConfig(cmd)
		if err != nil {
			logrus.WithError(err).Fatal("invalid configuration")
		}
		ix, err := cfg.CreateIndex(metrics.New())
		if err != nil {
			cfg.Log.WithError(err).Fatal("no elevation index")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := elevation.PickHeight(ctx, ix, elevation.HeightRequest{Lat: lat, Lon: lon, Mode: cfg.Interp})
		if err != nil {
			cfg.Log.WithError(err).Fatal("height lookup failed")
		}

		fmt.Printf("Location: %.6f, %.6f\n", result.Lat, result.Lon)
		fmt.Printf("Elevation: %.2f meters (%s)\n", result.Height, cfg.Interp)
		fmt.Printf("Tile: %s (order %d, %dx%d, cell %g deg)\n",
			result.Meta.Tile, result.Meta.Order, result.Meta.Cols, result.Meta.Rows, result.Meta.CellSize)
	},
}

func init() {
	rootCmd.AddCommand(heightCmd)

	heightCmd.Flags().Float64("lat", 0, "Latitude in degrees (required)")
	heightCmd.Flags().Float64("lon", 0, "Longitude in degrees (required)")
	_ = heightCmd.MarkFlagRequired("lat")
	_ = heightCmd.MarkFlagRequired("lon")
}
