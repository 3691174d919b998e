package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kn713606pp/Lne-task-bot/internal/config"
	"github.com/kn713606pp/Lne-task-bot/internal/dispatch"
	"github.com/kn713606pp/Lne-task-bot/internal/extract"
	"github.com/kn713606pp/Lne-task-bot/internal/httpapi"
	"github.com/kn713606pp/Lne-task-bot/internal/line"
	"github.com/kn713606pp/Lne-task-bot/internal/observability"
	"github.com/kn713606pp/Lne-task-bot/internal/records"
	"github.com/kn713606pp/Lne-task-bot/internal/speaker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := records.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("record store init failed: %v", err)
	}
	defer store.Close()
	log.Printf("record store: %s", records.StoreMode(cfg.DatabaseURL))

	classifier, err := extract.NewClassifier(extract.Config{
		Mode:    cfg.ClassifierMode,
		HTTPURL: cfg.ClassifierHTTPURL,
		APIKey:  cfg.ClassifierAPIKey,
		Model:   cfg.ClassifierModel,
		Timeout: cfg.ClassifierTimeout,
	})
	if err != nil {
		log.Fatalf("classifier init failed: %v", err)
	}
	if _, ok := classifier.(*extract.MockClassifier); ok {
		log.Printf("classifier: mock (no CLASSIFIER_HTTP_URL configured)")
	} else {
		log.Printf("classifier: http %s", cfg.ClassifierHTTPURL)
	}

	extractor := extract.NewExtractor(classifier)
	extractor.SetObserver(func(d time.Duration, failed bool) {
		metrics.ObserveClassifierLatency(d)
		if failed {
			metrics.ProviderErrors.WithLabelValues("classifier", "complete").Inc()
		}
	})

	roster := speaker.NewRoster(cfg.PrincipalAliases, cfg.DelegateAliases)
	detector := speaker.NewDetector(roster)

	lineClient := line.NewClient(cfg.LINEChannelToken, cfg.LINEAPIBaseURL)
	feed := httpapi.NewFeed()

	controller := dispatch.NewController(dispatch.Deps{
		Roster:    roster,
		Detector:  detector,
		Extractor: extractor,
		Store:     store,
		Profiles:  lineClient,
		Replier:   lineClient,
		Metrics:   metrics,
		Feed:      feed,
	})

	api := httpapi.New(cfg, controller, metrics, feed)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	if cfg.AdminUserID != "" {
		notifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := lineClient.Push(notifyCtx, cfg.AdminUserID, "task bot is online"); err != nil {
			log.Printf("admin startup notice failed: %v", err)
		}
		cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
