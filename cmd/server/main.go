package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"transfer-task-service/internal/adapters/solver"
	"transfer-task-service/internal/api"
	"transfer-task-service/internal/config"
	"transfer-task-service/internal/platform/obs"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires the CBC solver behind the solver port and starts the HTTP server.
func main() {
	envLoaded := config.LoadEnv()
	cfg := config.Load()
	obs.Install(obs.NewLogger(cfg.Debug))

	if !envLoaded {
		log.Info("No .env file found (using environment variables)")
	}

	cbc, err := solver.NewCBCSolver(solver.CBCConfig{
		Path:    cfg.CBCPath,
		Threads: cfg.CBCThreads,
		WorkDir: cfg.SolverWorkDir,
	})
	if err != nil {
		log.Fatal("solver setup failed", "err", err)
	}

	router := api.NewRouter(cbc, api.Options{
		AllowedOrigins:          cfg.CORSAllowedOrigins,
		DefaultTimeLimitSeconds: cfg.DefaultTimeLimitSeconds,
	})

	// No write timeout: an exact solve has no deadline and a timed one may
	// run for the whole requested budget.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, srv); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		log.Info("Shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("run: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
