// Package persist stores graph snapshots as JSON in a storage.BlobStore.
package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alekasndr/graphedit/pkg/graph"
	"github.com/Alekasndr/graphedit/pkg/storage"
)

const (
	DefaultKey     = "graph.json"
	DefaultTimeout = 5 * time.Second
)

// Adapter implements graph.Persister over a BlobStore. Failures are
// logged and swallowed; LastError exposes the most recent save error to
// callers that want to surface it.
type Adapter struct {
	store   storage.BlobStore
	key     string
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
	meters  metric.MeterProvider

	loads    metric.Int64Counter
	saves    metric.Int64Counter
	failures metric.Int64Counter

	mu      sync.Mutex
	lastErr error
}

var _ graph.Persister = (*Adapter)(nil)

type Option func(*Adapter)

// WithKey sets the storage key the document lives under.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMeterProvider records the adapter's counters on mp instead of the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *Adapter) {
		if mp != nil {
			a.meters = mp
		}
	}
}

func New(store storage.BlobStore, opts ...Option) *Adapter {
	a := &Adapter{
		store:   store,
		key:     DefaultKey,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:  otel.Tracer("graphedit/persist"),
		meters:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(a)
	}

	meter := a.meters.Meter("graphedit/persist")
	a.loads = counter(meter, "graphedit.persist.loads", "Graph documents read from the store")
	a.saves = counter(meter, "graphedit.persist.saves", "Graph documents written to the store")
	a.failures = counter(meter, "graphedit.persist.failures", "Failed or rejected store operations")
	return a
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		c, _ = noop.NewMeterProvider().Meter("").Int64Counter(name)
	}
	return c
}

// Key returns the storage key in use.
func (a *Adapter) Key() string { return a.key }

// Load reads and decodes the stored document. It reports false when
// nothing usable is stored.
func (a *Adapter) Load() (graph.Snapshot, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	ctx, span := a.tracer.Start(ctx, "persist.Load", trace.WithAttributes(attribute.String("persist.key", a.key)))
	defer span.End()

	data, err := a.store.Get(ctx, a.key)
	if errors.Is(err, storage.ErrNotFound) {
		a.logger.Debug("No stored graph", "key", a.key)
		span.SetAttributes(attribute.Bool("persist.found", false))
		return graph.Snapshot{}, false
	}
	if err != nil {
		a.fail(ctx, span, "load", err)
		return graph.Snapshot{}, false
	}

	snap, err := Decode(data)
	if err != nil {
		a.fail(ctx, span, "load", err)
		return graph.Snapshot{}, false
	}

	a.loads.Add(ctx, 1)
	span.SetAttributes(
		attribute.Bool("persist.found", true),
		attribute.Int("graph.nodes", len(snap.Nodes)),
		attribute.Int("graph.edges", len(snap.Edges)),
	)
	return snap, true
}

// Save encodes and writes the snapshot.
func (a *Adapter) Save(s graph.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	ctx, span := a.tracer.Start(ctx, "persist.Save", trace.WithAttributes(
		attribute.String("persist.key", a.key),
		attribute.Int("graph.nodes", len(s.Nodes)),
		attribute.Int("graph.edges", len(s.Edges)),
	))
	defer span.End()

	data, err := Encode(s)
	if err == nil {
		err = a.store.Put(ctx, a.key, data)
	}

	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()

	if err != nil {
		a.fail(ctx, span, "save", err)
		return
	}
	a.saves.Add(ctx, 1)
}

// LastError returns the error from the most recent Save, or nil.
func (a *Adapter) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

func (a *Adapter) fail(ctx context.Context, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	a.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	if op == "load" {
		a.logger.Warn("PersistenceReadFailure", "key", a.key, "error", err)
		return
	}
	a.logger.Warn("PersistenceWriteFailure", "key", a.key, "error", err)
}
