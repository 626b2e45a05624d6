package main

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavletto/demterrain/elevation"
	"github.com/pavletto/demterrain/fuel"
	"github.com/pavletto/demterrain/internal/metrics"
	"github.com/pavletto/demterrain/terrain"
)

// Config holds application configuration
type Config struct {
	ElevDir     string
	FuelFile    string
	Interp      elevation.Mode
	Output      terrain.Output
	Workers     int
	Out         string
	MetricsFile string
	Addr        string

	Log *logrus.Logger
}

// LoadConfig loads configuration from command flags, DEMTERRAIN_*
// environment variables and defaults, in that order.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEMTERRAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ElevDir:     v.GetString("elev-dir"),
		FuelFile:    v.GetString("fuel-file"),
		Workers:     v.GetInt("workers"),
		Out:         v.GetString("out"),
		MetricsFile: v.GetString("metrics-file"),
		Addr:        v.GetString("addr"),
	}

	var err error
	if cfg.Log, err = newLogger(v.GetString("log-level"), v.GetString("log-format")); err != nil {
		return Config{}, err
	}
	if cfg.Interp, err = elevation.ParseMode(v.GetString("interp")); err != nil {
		return Config{}, err
	}
	if out := v.GetString("output"); out != "" {
		if cfg.Output, err = terrain.ParseOutput(out); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// CreateIndex discovers the elevation tiles and reports their loads to m.
func (c *Config) CreateIndex(m *metrics.Metrics) (*elevation.Index, error) {
	ix, skipped, err := elevation.Discover(c.ElevDir, c.Log)
	if err != nil {
		return nil, err
	}
	ix.OnLoad = func(_ *elevation.Tile, err error) { m.TileLoaded(err) }
	c.Log.WithFields(logrus.Fields{
		"dir":     c.ElevDir,
		"tiles":   ix.Len(),
		"skipped": len(skipped),
	}).Info("elevation tiles registered")
	return ix, nil
}

// LoadFuel reads the fuel grid, if one is configured.
func (c *Config) LoadFuel() (*fuel.Grid, error) {
	if c.FuelFile == "" {
		return nil, nil
	}
	g, err := fuel.ReadFile(c.FuelFile)
	if err != nil {
		return nil, err
	}
	b := g.Bounds()
	c.Log.WithFields(logrus.Fields{
		"file": c.FuelFile, "cols": g.NCols, "rows": g.NRows,
		"long_min": b.LongMin, "long_max": b.LongMax, "lat_min": b.LatMin, "lat_max": b.LatMax,
	}).Info("fuel grid loaded")
	census := g.Census()
	for _, s := range fuel.Palette() {
		if n := census[s.Index]; n > 0 {
			c.Log.WithFields(logrus.Fields{"surface": s.ID, "code": s.Code, "cells": n}).Debug("fuel cells")
		}
	}
	return g, nil
}
