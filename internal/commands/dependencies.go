package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"hf-council/internal/config"
	"hf-council/internal/llm"
	"hf-council/internal/render"
	"hf-council/internal/service"
	"hf-council/internal/storage"
)

// Dependencies holds the external dependencies for the commands.
// Commands obtain it through loadDependencies so tests can substitute a mock service.
type Dependencies struct {
	// Service runs both drivers and reads history.
	Service service.CouncilService

	// Out receives answers and banners.
	Out io.Writer

	// Markdown enables glamour rendering of answers.
	Markdown bool

	// APIPort is the port `serve` listens on.
	APIPort string

	closers []func() error
}

// Printer returns a terminal printer for Out.
func (d *Dependencies) Printer() *render.Printer {
	return render.NewPrinter(d.Out, render.Options{Markdown: d.Markdown || markdownFlag})
}

// Close releases resources opened by NewDependencies.
func (d *Dependencies) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// loadDependencies is replaced in tests.
var loadDependencies = NewDependencies

// NewDependencies loads configuration, configures logging, and wires the
// council service. History is opened only when enabled; a history database
// that cannot be opened disables history for this process instead of failing.
func NewDependencies() (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogging(os.Stderr, cfg)

	deps := &Dependencies{
		Out:      os.Stdout,
		Markdown: cfg.Markdown,
		APIPort:  cfg.APIPort,
	}

	var store storage.RunStore
	if cfg.HistoryEnabled() {
		db, err := storage.New(cfg.DBPath)
		if err == nil {
			err = storage.Migrate(db)
			if err != nil {
				_ = db.Close()
			}
		}
		if err != nil {
			slog.Warn("history disabled", "path", cfg.DBPath, "error", err)
		} else {
			store = storage.NewRunRepo(db)
			deps.closers = append(deps.closers, db.Close)
			slog.Debug("history database initialized", "path", cfg.DBPath)
		}
	}

	client := llm.NewClient(cfg.APIURL, cfg.HFToken, cfg.RequestTimeout)
	deps.Service = service.NewCouncilService(client, store, service.Options{
		Members:      cfg.CouncilMembers,
		DefaultModel: cfg.DefaultModel,
		MaxTokens:    cfg.MaxTokens,
	})
	return deps, nil
}

// setupLogging installs the default slog logger with the configured level and format.
func setupLogging(w io.Writer, cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}
