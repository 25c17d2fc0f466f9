package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"MisinfoScanner/internal/config"
	"MisinfoScanner/internal/detector"
	"MisinfoScanner/internal/infrastructure/inference"
	"MisinfoScanner/internal/infrastructure/storage"
	"MisinfoScanner/internal/logging"
	"MisinfoScanner/internal/ports"
	"MisinfoScanner/internal/server"
	"MisinfoScanner/internal/usecase"
)

const shutdownGrace = 10 * time.Second

// Application wires configs to the analysis engine and HTTP lifecycle.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	server *http.Server
	db     *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger, version string) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	analyzer := BuildAnalyzer(cfg, baseLogger)

	var db *sql.DB
	var history ports.AnalysisRepository
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		db = opened
		history = storage.NewPostgresRepository(db)
	}

	api := server.New(server.Deps{
		Analyzer:      analyzer,
		History:       history,
		Logger:        baseLogger.With("component", "server"),
		MaxTextLength: cfg.Analysis.MaxTextLength,
		Version:       version,
	})

	return &Application{
		cfg:    cfg,
		logger: baseLogger,
		server: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		db: db,
	}, nil
}

// BuildAnalyzer assembles the detector set and the aggregator. The CLI
// reuses it for one-shot analyses without the HTTP surface.
func BuildAnalyzer(cfg config.Config, baseLogger *slog.Logger) *usecase.Analyzer {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var classifier ports.Classifier
	if cfg.Inference.Token != "" {
		classifier = inference.NewClient(cfg.Inference)
	}

	registry := detector.NewRegistry()
	registry.Register(detector.NewClickbait())
	registry.Register(detector.NewBias())
	registry.Register(detector.NewCredibility())
	registry.Register(detector.NewML(classifier, baseLogger.With("component", "detector.ml")))

	clickbait, _ := registry.Resolve("clickbait")
	bias, _ := registry.Resolve("bias")

	return usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Detectors: registry.All(),
		Fallback:  []ports.Detector{clickbait, bias},
		Timeout:   cfg.Analysis.Timeout(),
		Logger:    baseLogger.With("component", "analyzer"),
	})
}

// Run serves HTTP until the context ends or a signal arrives, then shuts
// down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "address", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return a.server.Shutdown(shutCtx)
	}
}
