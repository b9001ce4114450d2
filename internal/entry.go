// Package internal provides the application initialization and run logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/starford/doclinks/internal/analyzer"
	"github.com/starford/doclinks/internal/apperr"
	"github.com/starford/doclinks/internal/models"
)

// Run validates the configuration and analyzes the configured scan root.
func Run(ctx context.Context, opts ...Option) (*models.AnalysisResult, error) {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("%w: config is required", apperr.ErrConfiguration)
	}

	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrConfiguration, err)
	}

	logger := app.logger
	if logger == nil {
		// Structured logs go to stderr; stdout carries the report.
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
		slog.SetDefault(logger)
	}

	logger.Debug("Configuration loaded",
		slog.String("root", cfg.Scan.Root),
		slog.String("entry_point", cfg.Scan.EntryPoint),
		slog.String("extensions", strings.Join(cfg.Scan.Extensions, ",")),
		slog.Int("workers", cfg.Scan.Workers),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return analyzer.Analyze(ctx, cfg.Scan.Root, analyzer.Options{
		Verbose:         cfg.Output.Verbose,
		EntryPoint:      cfg.Scan.EntryPoint,
		Workers:         cfg.Scan.Workers,
		Extensions:      cfg.Scan.Extensions,
		Ignore:          cfg.Scan.Ignore,
		ExternalSchemes: cfg.Scan.ExternalSchemes,
		Logger:          logger,
	})
}
