package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"YieldSentinel/internal/config"
	"YieldSentinel/internal/loader"
	"YieldSentinel/internal/recorder"
	"YieldSentinel/internal/scheduler"
	"YieldSentinel/internal/server"
	"YieldSentinel/internal/session"
	"YieldSentinel/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] YieldSentinel starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init source
	var source loader.Source
	if cfg.DataSource.BaseURL != "" {
		source = loader.NewHTTPSource(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.Symbol)
	} else {
		source = loader.NewCSVSource(cfg.DataSource.CSVPath)
	}
	log.Printf("[INFO] data source: %s", source.Name())

	// Init store
	st := store.New(source, store.Params{
		Window: session.Window{
			StartHour: cfg.SessionWindow.StartHour,
			EndHour:   cfg.SessionWindow.EndHour,
		},
		TenYearPremium:   cfg.Metrics.TenYearPremium,
		FedFundsUpper:    cfg.Metrics.FedFundsUpper,
		VolatilityWindow: time.Duration(cfg.Metrics.VolatilityWindowDays) * 24 * time.Hour,
	})

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial load so the dashboard has data before the first cron tick
	sched := scheduler.NewScheduler(ctx, st, rec)
	if err := sched.RunRefreshNow(); err != nil {
		log.Fatalf("[FATAL] initial data load: %v", err)
	}

	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Init HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.New(st, cfg.DataSource.Symbol, cfg.Chart.SessionsShown).Handler(),
	}
	go func() {
		log.Printf("[INFO] dashboard listening on http://%s", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] YieldSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] YieldSentinel stopped")
}
