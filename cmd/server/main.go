package main

import (
	"context"
	"elevator-sim-service/internal/adapters/eventlog"
	"elevator-sim-service/internal/adapters/notify"
	"elevator-sim-service/internal/api"
	"elevator-sim-service/internal/config"
	"elevator-sim-service/internal/platform/logger"
	"elevator-sim-service/internal/ports"
	"elevator-sim-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires the event log and optional Redis publisher behind ports, starts the
// scheduler loop and serves HTTP until SIGINT/SIGTERM.
func main() {
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.SetLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := eventlog.Open(ctx, cfg.EventLog)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info().Msgf("event log ready backend=%s", store.Backend)

	var publisher ports.StatePublisher
	if cfg.RedisAddr != "" {
		client, err := notify.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		publisher = notify.NewRedisStatePublisher(client, cfg.RedisChannel, cfg.Simulation.MaxCapacity)
		log.Info().Msgf("state publisher ready addr=%s channel=%s", cfg.RedisAddr, cfg.RedisChannel)
	}

	scheduler, err := services.NewScheduler(cfg.Simulation, store, publisher)
	if err != nil {
		return err
	}

	router := api.NewRouter(scheduler, cfg.Simulation.MaxCapacity, store)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := scheduler.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		log.Info().Msgf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
