package app

import (
	"io"
	"log/slog"

	"github.com/Alekasndr/graphedit/pkg/config"
)

// NewLogger builds the process logger: JSON or text, debug level when
// verbose. Credential-like attributes are redacted.
func NewLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactSensitiveData,
	}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// redactSensitiveData scrubs sensitive keys from logs.
func redactSensitiveData(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case "password", "secret", "token", "access_key", "secret_key", "session_token", "credential":
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}
