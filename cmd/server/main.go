package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement-tutor/internal/app"
	"placement-tutor/internal/artifact"
	"placement-tutor/internal/orchestrator"
	"placement-tutor/internal/platform/config"
	"placement-tutor/internal/platform/logger"
	"placement-tutor/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()
	settings := config.FromEnv()

	log := logger.New(settings.LogLevel, settings.LogFormat)
	met := metrics.New()

	tutor, err := app.New(context.Background(), settings, log, met)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer tutor.Close()

	h := orchestrator.NewHandler(tutor.Service, tutor.Catalog, log)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetStoredArtifacts(tutor.StoredArtifacts()) }).ServeHTTP(w, r)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", h.Generate)
		r.Get("/topics", h.Topics)
		if tutor.Artifacts != nil {
			r.Get("/artifacts/{id}", artifact.NewHandler(tutor.Artifacts, log).Get)
		}
	})

	addr := ":" + settings.Port
	// WriteTimeout leaves room for the pipeline budget plus encoding.
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      settings.RequestTimeout + 15*time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", settings.Port,
		"provider", settings.LLMProvider,
		"artifact_mode", settings.ArtifactMode,
		"log_level", settings.LogLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
