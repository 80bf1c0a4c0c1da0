package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"GoldBrief/internal/domain/models"
	"GoldBrief/internal/usecase"
	"GoldBrief/pkg/config"
	xhttp "GoldBrief/pkg/http"
	applogger "GoldBrief/pkg/logger"
)

// DigestRunner builds and optionally sends the digest.
type DigestRunner interface {
	Run(ctx context.Context, dryRun bool) (models.Digest, []usecase.Delivery)
}

// App encapsulates the application lifecycle for both entry points.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	httpHandler xhttp.Handler
	digest      DigestRunner
	out         io.Writer
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, digest DigestRunner) *App {
	return &App{
		cfg:         cfg,
		log:         log,
		httpHandler: handler,
		digest:      digest,
		out:         os.Stdout,
	}
}

// SetOutput redirects the dry-run digest printout.
func (a *App) SetOutput(w io.Writer) { a.out = w }

// Serve runs the dashboard until ctx is cancelled or the process is
// interrupted, then shuts the HTTP server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	srv := xhttp.NewServer(a.httpHandler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithCORS(a.cfg.Server.CORS),
	)

	if err := srv.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logSources()

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout())
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.log.Info("shutdown complete")
	return nil
}

// RunDigest builds the digest once and sends it unless dryRun is set.
// Delivery failures are logged by the digest service and never returned.
func (a *App) RunDigest(ctx context.Context, dryRun bool) error {
	a.logSources()

	d, deliveries := a.digest.Run(ctx, dryRun)
	if dryRun {
		if _, err := fmt.Fprintln(a.out, d.Text); err != nil {
			return fmt.Errorf("print digest: %w", err)
		}
		return nil
	}

	sent := 0
	for _, res := range deliveries {
		if res.Sent {
			sent++
		}
	}
	a.log.Info("digest run finished",
		applogger.Int("sinks", len(deliveries)),
		applogger.Int("delivered", sent))
	return nil
}

func (a *App) logSources() {
	s := a.cfg.Sources()
	a.log.Info("sources resolved",
		applogger.String("env", a.cfg.Environment),
		applogger.Bool("twelvedata", s.TwelveData),
		applogger.Bool("finnhub", s.Finnhub),
		applogger.Bool("fred", s.FRED),
		applogger.Bool("calendar", s.Calendar),
		applogger.Bool("news", s.News),
		applogger.Bool("sentiment", s.Sentiment),
		applogger.Bool("telegram", s.Telegram),
		applogger.Bool("kafka", s.Kafka))
}
