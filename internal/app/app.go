package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/vk/optionkit/internal/ctxlog"
	"github.com/vk/optionkit/manifest"
)

// ErrFindings is returned by Run when at least one schema has a finding.
var ErrFindings = errors.New("lint findings reported")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Reports go to outW,
// logs to logW; a nil logW discards logs.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Run loads the configured manifests, lints every schema and writes the
// report. It returns ErrFindings, together with the report, when any
// schema has a problem.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths())

	catalog, err := manifest.Load(ctx, a.config.Paths()...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load manifests")
	}

	report := &Report{Schemas: catalog.Len()}
	for _, name := range catalog.Names() {
		schema, _ := catalog.Schema(name)
		for _, lintErr := range schema.Lint(ctx) {
			report.add(name, lintErr)
		}
	}
	a.logger.Debug("Lint finished.", "schemas", report.Schemas, "findings", len(report.Findings))

	noColor := a.config.NoColor() || !isTerminal(a.outW)
	if err := report.Render(a.outW, a.config.Format(), noColor); err != nil {
		return nil, errors.Wrap(err, "failed to write report")
	}

	if len(report.Findings) > 0 {
		return report, ErrFindings
	}
	return report, nil
}
