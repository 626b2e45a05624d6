package main

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pavletto/demterrain/config"
	"github.com/pavletto/demterrain/fds"
	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/metrics"
	"github.com/pavletto/demterrain/terrain"
)

// maxLoggedGaps bounds the per-point coverage lines logged on failure.
const maxLoggedGaps = 20

var buildCmd = &cobra.Command{
	Use:   "build CASE",
	Short: "Build an FDS terrain input file from a case file",
	Long: `Build samples the elevation tiles on the case grid and writes an FDS input
file with the terrain as a GEOM surface (--output geom) or as OBST blocks
(--output obst).

The case file is either the keyword format (GRID, LONGLATORIG, ...) or
TOML when its name ends in .toml.

Example:
  demterrain build blodgett.in --elev-dir ./dem --output geom
  demterrain build blodgett.toml --output obst --workers 4 --out blodgett.fds`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			logrus.WithError(err).Fatal("invalid configuration")
		}
		if err := runBuild(cfg, args[0]); err != nil {
			logCoverage(cfg.Log, err)
			cfg.Log.WithError(err).Fatal("build failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output .fds file (default: CASE name with .fds next to the case file)")
	cmd.Flags().StringP("fuel-file", "f", "", "ESRI ASCII fuel model grid")
	cmd.Flags().String("output", "geom", "Terrain output: geom or obst")
	cmd.Flags().IntP("workers", "w", 1, "Rows sampled in parallel")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the build")
}

// runBuild runs one case from file to FDS output. Configuration errors
// surface before any tile payload is read.
func runBuild(cfg Config, casePath string) error {
	log := cfg.Log
	m := metrics.New()

	c, err := config.Load(casePath)
	if err != nil {
		return err
	}
	frame, err := c.Resolve()
	if err != nil {
		return err
	}
	lattice, err := geodesy.BuildLattice(frame, c.Cols, c.Rows)
	if err != nil {
		return err
	}

	zmin, zmax := c.ZOverride()
	builder := terrain.Builder{
		Mesh:         cfg.Output == terrain.OutputMesh,
		Obstructions: cfg.Output == terrain.OutputObstructions,
		Exclusions:   c.Exclusions,
		BufferDist:   c.BufferDist,
		ZMin:         zmin,
		ZMax:         zmax,
		Log:          log,
		Metrics:      m,
	}
	if err := builder.Check(); err != nil {
		return err
	}
	if builder.Fuel, err = cfg.LoadFuel(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"case": c.Name, "mode": frame.Mode, "cols": c.Cols, "rows": c.Rows,
		"long_min": frame.Bounds.LongMin, "long_max": frame.Bounds.LongMax,
		"lat_min": frame.Bounds.LatMin, "lat_max": frame.Bounds.LatMax,
	}).Info("case resolved")

	ix, err := cfg.CreateIndex(m)
	if err != nil {
		return err
	}

	start := time.Now()
	grid, err := terrain.Sample(lattice, ix, terrain.SampleOptions{
		Mode:    cfg.Interp,
		Workers: cfg.Workers,
		Log:     log,
		Metrics: m,
	})
	if err != nil {
		return err
	}
	log.WithField("took", time.Since(start)).Info("lattice sampled")

	res, err := builder.Build(grid)
	if err != nil {
		return err
	}

	out := cfg.Out
	if out == "" {
		out = filepath.Join(filepath.Dir(casePath), c.Name+".fds")
	}
	fc := fds.Case{
		CHID:   c.Name,
		Source: filepath.Base(casePath),
		Frame:  frame,
		KBar:   c.KBar,
		MeshX:  c.MeshX,
		MeshY:  c.MeshY,
	}
	if err := fds.WriteFile(out, fc, res); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": out, "output": res.Output()}).Info("fds file written")

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.WithError(err).WithField("file", cfg.MetricsFile).Warn("metrics not written")
		}
	}
	return nil
}

// logCoverage lists the first uncovered points of a coverage failure.
func logCoverage(log logrus.FieldLogger, err error) {
	var ce *terrain.CoverageError
	if !errors.As(err, &ce) {
		return
	}
	for i, g := range ce.Gaps {
		if i == maxLoggedGaps {
			log.Errorf("... %d more uncovered points", len(ce.Gaps)-maxLoggedGaps)
			break
		}
		log.WithFields(logrus.Fields{
			"row": g.Row, "col": g.Col, "lon": g.Lon, "lat": g.Lat, "tile": g.Tile,
		}).Error("point not covered")
	}
	var tiles []string
	for _, b := range ce.Tiles {
		tiles = append(tiles, b.String())
	}
	if len(tiles) > 0 {
		log.WithField("tiles", strings.Join(tiles, "; ")).Error("available tile bounds")
	}
}
