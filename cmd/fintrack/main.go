package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/cli"
	apphttp "github.com/michaelfuchaka/Personal-Finance-Tracker/internal/http"
	applog "github.com/michaelfuchaka/Personal-Finance-Tracker/internal/log"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	blob := cli.OpenBlobStore(logger, cfg)
	defer func() {
		if err := blob.Cleanup(); err != nil {
			logger.Error("Persistence cleanup failed", "error", err)
		}
	}()

	st := store.New(blob.Store, logger.WithComponent(applog.ComponentStore))
	if err := st.Load(context.Background()); err != nil {
		logger.Error("Failed to load transactions", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Transactions loaded", "count", st.Len(), "backend", cfg.DataBackend)

	srv := apphttp.NewServer(":"+cfg.Port, st)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
