package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/vitrine/internal/adapters/http/api"
	"github.com/okian/vitrine/internal/adapters/mail"
	app "github.com/okian/vitrine/internal/app"
	"github.com/okian/vitrine/internal/config"
	"github.com/okian/vitrine/pkg/logger"
	"github.com/okian/vitrine/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// The service runs without mail credentials so the gallery and health
	// endpoints stay up, but contact submissions will fail until both are set.
	if cfg.BrevoAPIKey == "" {
		loggerInstance.Error(ctx, "BREVO_API_KEY is not set; contact form sends will fail")
	}
	if cfg.ReceivingEmail == "" {
		loggerInstance.Error(ctx, "YOUR_RECEIVING_EMAIL is not set; contact form sends will fail")
	}
	if cfg.SenderEmail == "" {
		loggerInstance.Warn(ctx, "BREVO_SENDER_EMAIL is not set; falling back to contact@<request host>")
	}

	opts := []app.Option{
		app.WithLogger(loggerInstance),
		app.WithRateLimit(cfg.RateLimitWindow, cfg.RateLimitMax),
		app.WithMailAddresses(cfg.SenderEmail, cfg.ReceivingEmail),
		app.WithMailTimeout(cfg.MailTimeout),
		app.WithEnvironment(cfg.Environment),
		app.WithGallery(cfg.GalleryCardCount, cfg.GalleryRingRadius, cfg.GalleryCardHeight),
	}
	if cfg.BrevoAPIKey != "" {
		opts = append(opts, app.WithSender(mail.NewBrevoClient(cfg.BrevoAPIKey, mail.WithTimeout(cfg.MailTimeout))))
	}
	svc := app.New(opts...)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, api.WithAllowedOrigins(cfg.AllowedOrigins))
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("environment", cfg.Environment),
			logger.Bool("mail_configured", cfg.MailConfigured()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval) // Update every 10 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// service-level gauges from the service's own stats.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval) // Update every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes the rate limit gauge as a side effect.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
