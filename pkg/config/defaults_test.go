package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.Store.URL)
	assert.Equal(t, "graph.json", cfg.Store.Key)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Editor.HighlightDuration)
	assert.False(t, cfg.Log.JSON)
	assert.Empty(t, cfg.Telemetry.Endpoint)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.URL = ""
	cfg.Store.Key = ""
	cfg.Store.Timeout = 0
	cfg.Editor.HighlightDuration = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"store.url", "store.key", "store.timeout", "editor.highlight_duration"} {
		assert.Contains(t, err.Error(), want)
	}
}
