package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"savings-finder/internal/api"
	"savings-finder/internal/api/middleware"
	"savings-finder/internal/feed"
	"savings-finder/internal/ocr"
	"savings-finder/internal/service"
	"savings-finder/pkg/config"
)

func main() {
	cfg := config.LoadServerConfig()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// coupon source: JSON file when configured, built-in samples otherwise
	var source feed.Source = feed.StaticSource{}
	if cfg.CouponFile != "" {
		source = feed.FileSource{Path: cfg.CouponFile}
	}

	catalog := feed.NewCatalog(source, time.Now)
	refunds := service.NewRefundService(time.Now)
	extractor := ocr.NewStubExtractor(time.Now)

	handler := api.NewRouter(refunds, catalog, extractor, cfg.AdjustmentWindowDays)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log.Logger))
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Info().Int("port", cfg.Port).Msg("starting refund-service")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("listen")
	}

	<-idleConnsClosed
	log.Info().Msg("server stopped")
}
