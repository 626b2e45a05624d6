package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pavletto/demterrain/elevation"
	"github.com/pavletto/demterrain/internal/metrics"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 120 * time.Second
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start an HTTP server over the tiles in --elev-dir with endpoints:
  - /height?lat=..&lon=..[&interp=nearest] - terrain elevation at a location
  - /tiles   - registered tiles and their load state
  - /health  - health check
  - /metrics - Prometheus metrics

Tiles are loaded on their first query and kept for the life of the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			logrus.WithError(err).Fatal("invalid configuration")
		}
		m := metrics.New()
		ix, err := cfg.CreateIndex(m)
		if err != nil {
			cfg.Log.WithError(err).Fatal("no elevation index")
		}

		srv := &http.Server{
			Addr:         cfg.Addr,
			Handler:      newMux(&elevation.Server{Index: ix}, m),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()

		cfg.Log.WithFields(logrus.Fields{"addr": cfg.Addr, "tiles": ix.Len()}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cfg.Log.WithError(err).Fatal("server failed")
		}
		cfg.Log.Info("server stopped")
	},
}

func newMux(s *elevation.Server, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/height", s.HandleHeight)
	mux.HandleFunc("/tiles", s.HandleTiles)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.Handle("/metrics", m.Handler())
	return m.Middleware(mux)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
