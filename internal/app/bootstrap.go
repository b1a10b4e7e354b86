// Package app wires configuration, storage, persistence and the graph
// model into a running editor session.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alekasndr/graphedit/pkg/config"
	"github.com/Alekasndr/graphedit/pkg/graph"
	"github.com/Alekasndr/graphedit/pkg/persist"
	"github.com/Alekasndr/graphedit/pkg/storage"
	"github.com/Alekasndr/graphedit/pkg/telemetry"
	"github.com/Alekasndr/graphedit/pkg/tui"
	"github.com/Alekasndr/graphedit/pkg/version"
)

// App is one editor session.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Store     storage.BlobStore
	Persister *persist.Adapter
	Graph     *graph.Model

	logOutput     io.Writer
	skipTelemetry bool
	shutdown      func(context.Context) error
}

// Option defines a functional configuration override.
type Option func(*App)

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) { a.logOutput = w }
}

// WithStore uses s instead of opening Config.Store.URL.
func WithStore(s storage.BlobStore) Option {
	return func(a *App) { a.Store = s }
}

// WithoutTelemetry leaves the global tracer provider alone, for callers
// that already configured OpenTelemetry.
func WithoutTelemetry() Option {
	return func(a *App) { a.skipTelemetry = true }
}

// New validates cfg and builds the session. The graph is loaded from the
// store, or seeded when nothing usable is stored.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		Config:    cfg,
		logOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Logger = NewLogger(a.logOutput, cfg.Log)

	if !a.skipTelemetry {
		shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, cfg.Telemetry.Endpoint)
		if err != nil {
			a.Logger.Warn("Telemetry failed", "error", err)
		} else {
			a.shutdown = shutdown
		}
	}

	if a.Store == nil {
		store, err := storage.Open(ctx, cfg.Store.URL,
			storage.WithRegion(cfg.Store.Region),
			storage.WithEndpoint(cfg.Store.Endpoint),
			storage.WithCreateTable(cfg.Store.CreateTable),
		)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		a.Store = store
	}
	a.Logger.Debug("Store opened", "url", cfg.Store.URL, "key", cfg.Store.Key)

	a.Persister = persist.New(a.Store,
		persist.WithKey(cfg.Store.Key),
		persist.WithTimeout(cfg.Store.Timeout),
		persist.WithLogger(a.Logger),
	)
	a.Graph = graph.New(
		graph.WithPersister(a.Persister),
		graph.WithLogger(a.Logger),
	)
	return a, nil
}

// SaveError reports a failed save from the most recent mutation.
func (a *App) SaveError() error {
	if err := a.Persister.LastError(); err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}
	return nil
}

// RunEditor runs the terminal editor until the user quits.
func (a *App) RunEditor(ctx context.Context, progOpts ...tea.ProgramOption) error {
	model := tui.NewModel(a.Graph,
		tui.WithHighlightDuration(a.Config.Editor.HighlightDuration),
		tui.WithLogger(a.Logger),
	)
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)...)

	// Mutations made inside Update notify on the program's own goroutine,
	// so the send must not block it.
	unsubscribe := a.Graph.Subscribe(func(c graph.Change) {
		go p.Send(tui.GraphChangedMsg{Change: c})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}

// Close releases the store and flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if c, ok := a.Store.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(ctx))
	}
	return errors.Join(errs...)
}
