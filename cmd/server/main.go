package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"impactsTracker/internal/config"
	"impactsTracker/internal/db"
	"impactsTracker/internal/grpcserver"
	"impactsTracker/internal/httpapi"
	"impactsTracker/internal/logger"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	load := config.Load
	if env := os.Getenv("APP_ENV"); env == "" || env == "dev" {
		load = config.LoadWithDefaults
	}
	cfg, err := load()
	if err != nil {
		fallback := logger.New("prod", "info")
		fallback.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Env, cfg.Log.Level)
	log.Info().Str("config", cfg.String()).Msg("configuration loaded")

	d, err := db.OpenDriver(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error().Err(err).Msg("close db")
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpapi.NewRouter(log, cfg, d),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTP.Address).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	gs, err := grpcserver.StartGRPC(cfg, log, d)
	if err != nil {
		log.Fatal().Err(err).Msg("start grpc")
	}
	log.Info().Str("addr", gs.Addr().String()).Msg("grpc server listening")

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := gs.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("grpc shutdown")
	}
}
