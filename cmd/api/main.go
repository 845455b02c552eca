package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"gtd-capture/config"
	_ "gtd-capture/docs" // Swagger docs
	"gtd-capture/internal/checklist"
	extractionHTTP "gtd-capture/internal/extraction/delivery/http"
	"gtd-capture/internal/extraction/usecase"
	"gtd-capture/internal/httpserver"
	"gtd-capture/internal/middleware"
	"gtd-capture/pkg/gcalendar"
	"gtd-capture/pkg/llmtransport"
	"gtd-capture/pkg/log"
)

// @title       GTD Capture API
// @description Turns free-form captured text into categorized, schedulable checklist actions via LLM extraction.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting GTD Capture...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM transport strategy
	transports, err := llmtransport.InitializeTransports(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize transports: %v", err)
		return
	}
	for _, t := range transports {
		logger.Infof(ctx, "Transport ready: %s (%s)", t.Name(), t.Model())
	}

	var limiter *rate.Limiter
	if cfg.LLM.RateLimitPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.LLM.RateLimitPerMin)/60.0), 1)
	}

	executor := llmtransport.NewExecutor(transports, &llmtransport.Config{
		Retry: llmtransport.RetryPolicy{
			MaxRetries: cfg.LLM.MaxRetries,
			BaseDelay:  config.Duration(cfg.LLM.BaseDelay, time.Second),
			MaxDelay:   config.Duration(cfg.LLM.MaxDelay, 30*time.Second),
		},
		RequestTimeout: config.Duration(cfg.LLM.RequestTimeout, 60*time.Second),
	}, limiter, logger)

	// 4. Google Calendar client (optional)
	var calendarClient *gcalendar.Client
	if cfg.Calendar.Enabled && cfg.Calendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.Calendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 5. Extraction domain
	uc := usecase.New(logger, executor, calendarClient, usecase.Config{
		MaxInputChars: cfg.Extraction.MaxInputChars,
		StrictJSON:    cfg.Extraction.StrictJSON,
		Timezone:      cfg.Extraction.Timezone,
		CalendarID:    cfg.Calendar.CalendarID,
		CacheSize:     cfg.Extraction.CacheSize,
		CacheTTL:      config.Duration(cfg.Extraction.CacheTTL, 15*time.Minute),
		SessionTTL:    config.Duration(cfg.Extraction.SessionTTL, 30*time.Minute),
		MaxSessions:   cfg.Extraction.MaxSessions,
	})

	handler := extractionHTTP.New(logger, uc, checklist.New())
	mw := middleware.New(logger, cfg.HTTPServer.RateLimitPerMin)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		Middleware:        mw,
		ExtractionHandler: handler,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
