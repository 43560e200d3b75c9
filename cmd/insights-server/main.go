// Command insights-server serves the review-insight pipeline over HTTP.
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theimaginaryfoundation/review-radar/insights"
	"github.com/theimaginaryfoundation/review-radar/insights/provider"
	"github.com/theimaginaryfoundation/review-radar/server"
)

func main() {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	apiKey := cfg.OpenAIAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing REVIEWRADAR_OPENAI_API_KEY (or OPENAI_API_KEY)")
		os.Exit(2)
	}

	log, err := newLogger(cfg.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	pipeline, err := insights.NewPipeline(insights.Options{
		Gen:         provider.New(apiKey, cfg.Model),
		Log:         log,
		Concurrency: cfg.Concurrency,
		MaxInsights: cfg.MaxInsights,
	})
	if err != nil {
		log.Fatal("pipeline init failed", zap.Error(err))
	}

	if cfg.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := server.NewHandler(pipeline, log, cfg.RequestTimeout)
	router := server.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("model", cfg.Model))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
