package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wishshare/internal/adapter/repo"
	"wishshare/internal/http/handlers"
	"wishshare/internal/http/httpapi"
	"wishshare/internal/infra"
	"wishshare/internal/mail"
	"wishshare/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := infra.RunMigrations(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	var mailer mail.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	} else {
		mailer = mail.NewLogMailer(logger)
	}

	app := &handlers.App{
		Users:     repo.NewUserRepository(dbpool),
		Wishes:    repo.NewWishRepository(dbpool),
		Offers:    repo.NewOfferRepository(dbpool),
		Wishlists: repo.NewWishlistRepository(dbpool),
		Mailer:    mailer,
		Metrics:   metrics.New(registry),
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
	}

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	router := httpapi.NewRouter(app, cfg, logger, metricsHandler)

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
