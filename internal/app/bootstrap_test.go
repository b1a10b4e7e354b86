package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alekasndr/graphedit/pkg/config"
	"github.com/Alekasndr/graphedit/pkg/graph"
	"github.com/Alekasndr/graphedit/pkg/storage"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Store.URL = t.TempDir()
	return cfg
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Key = ""

	_, err := New(context.Background(), cfg, WithoutTelemetry())
	assert.ErrorContains(t, err, "store.key")
}

func TestNew_UnsupportedStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.URL = "ftp://example.com/graphs"

	_, err := New(context.Background(), cfg, WithoutTelemetry(), WithLogOutput(&bytes.Buffer{}))
	assert.ErrorIs(t, err, storage.ErrUnsupportedScheme)
}

func TestNew_SeedsAndPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, WithoutTelemetry(), WithLogOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, graph.Seed().Nodes, a.Graph.Nodes())

	require.NoError(t, a.Graph.AddNode("Node 3", graph.GridPosition(2)))
	_, err = a.Graph.Connect("1", "3", nil)
	require.NoError(t, err)
	require.NoError(t, a.SaveError())
	require.NoError(t, a.Close(ctx))

	b, err := New(ctx, cfg, WithoutTelemetry(), WithLogOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	defer b.Close(ctx)
	assert.Len(t, b.Graph.Nodes(), 3)
	assert.Len(t, b.Graph.Edges(), 1)
}

type failingStore struct{ storage.BlobStore }

func (failingStore) Put(ctx context.Context, key string, data []byte) error {
	return errors.New("disk full")
}

func TestSaveError(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t)
	cfg.Log.JSON = true

	a, err := New(context.Background(), cfg,
		WithoutTelemetry(),
		WithLogOutput(&logs),
		WithStore(failingStore{storage.NewMemoryStore()}),
	)
	require.NoError(t, err)

	require.NoError(t, a.Graph.AddNode("Node 3", graph.Position{}))
	assert.ErrorContains(t, a.SaveError(), "disk full")
	assert.Contains(t, logs.String(), "PersistenceWriteFailure")
	assert.Len(t, a.Graph.Nodes(), 3, "the in-memory graph keeps the change")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LogConfig{JSON: true})
	logger.Debug("hidden")
	logger.Info("connect", "token", "abc123", "region", "us-east-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connect", entry["msg"])
	assert.Equal(t, "[REDACTED]", entry["token"])
	assert.Equal(t, "us-east-1", entry["region"])

	buf.Reset()
	logger = NewLogger(&buf, config.LogConfig{Verbose: true})
	logger.Debug("shown", "secret", "x")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "secret=[REDACTED]")
}

func TestNew_InitializesTelemetry(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	ctx := context.Background()
	var logs bytes.Buffer
	cfg := testConfig(t)
	cfg.Log.Verbose = true

	a, err := New(ctx, cfg, WithLogOutput(&logs))
	require.NoError(t, err)
	require.NotNil(t, a.shutdown, "telemetry shutdown hook is installed")
	assert.NotContains(t, logs.String(), "Telemetry failed")
	assert.NotContains(t, logs.String(), "level=WARN")

	require.NoError(t, a.Close(ctx))
}
