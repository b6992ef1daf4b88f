package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/harnesslab/tally/pkg/badge"
	"github.com/harnesslab/tally/pkg/compliance"
	"github.com/harnesslab/tally/pkg/logging"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/server"
	"github.com/harnesslab/tally/pkg/store"
)

const (
	name           = "tallyd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/harnesslab/tally/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, loads the report store, sets up routes, and handles
// graceful shutdown. Returns an error if the server fails to start or
// encounters a fatal error.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg := server.NewConfig()

	// Load the run-log directory up front so the first request is served
	// from a warm store.
	st := store.New(cfg.ReportsDir, store.WithVersion(version))
	if err := st.Load(ctx); err != nil {
		slog.Error("loading report store", "error", err)
		return err
	}

	summaries := report.NewSummaryHandler(report.New(), version)
	reports := store.NewHandler(st, version)
	matrix := compliance.NewHandler(st, version)
	badges := badge.NewHandler(st, version)

	r := map[string]http.HandlerFunc{
		"/v1/summary":           summaries.HandleSummary,
		store.RoutePrefix:       reports.HandleReports,
		store.RoutePrefix + "/": reports.HandleReports,
		"/v1/compliance":        matrix.HandleCompliance,
		badge.RoutePrefix:       badges.HandleBadges,
	}

	s := server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Hot reload is best effort; a broken watcher never takes the
		// API down.
		if err := st.Watch(gctx); err != nil {
			slog.Warn("report watch stopped", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
