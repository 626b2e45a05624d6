package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "demterrain",
	Short: "Build fire-simulation terrain from elevation tiles",
	Long: `demterrain samples ESRI float elevation tiles onto a regular grid around a
geographic reference point and writes the terrain as an FDS input file,
either as a triangulated GEOM surface or as OBST blocks.

It also answers single height queries from the same tiles, on the command
line or over HTTP.

Configuration can be set via command-line flags, DEMTERRAIN_* environment
variables or a .env file, in that order of precedence.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	addGlobalFlags(rootCmd)
}

func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("elev-dir", "e", ".", "Directory of *.hdr/*.flt elevation tiles")
	cmd.PersistentFlags().String("interp", "bilinear", "Elevation interpolation: bilinear or nearest")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// loadDotEnv reads .env from the working directory if there is one.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("ignoring .env")
	}
}

// newLogger builds the process logger from the log flags.
func newLogger(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
