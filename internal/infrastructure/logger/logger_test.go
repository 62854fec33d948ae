package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
	}

	log := NewWithOutput(cfg, &buf)
	log.Info().Str("key", "value").Msg("test message")

	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "JSON format should produce valid JSON")

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "test message", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-service",
	}

	log := NewWithOutput(cfg, &buf)
	log.Info().Msg("console message")

	output := buf.String()
	assert.NotEmpty(t, output)
	assert.Contains(t, output, "console message")
	// Console output is human-readable, not a JSON object
	assert.False(t, strings.HasPrefix(strings.TrimSpace(output), "{"))
}

func TestNewLogger_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logDebug   bool
		logInfo    bool
		logWarning bool
	}{
		{"debug level logs everything", "debug", true, true, true},
		{"info level drops debug", "info", false, true, true},
		{"warn level drops info", "warn", false, false, true},
		{"error level drops warn", "error", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(Config{Level: tt.level, Format: "json"}, &buf)

			buf.Reset()
			log.Debug().Msg("debug msg")
			assert.Equal(t, tt.logDebug, buf.Len() > 0, "debug output")

			buf.Reset()
			log.Info().Msg("info msg")
			assert.Equal(t, tt.logInfo, buf.Len() > 0, "info output")

			buf.Reset()
			log.Warn().Msg("warn msg")
			assert.Equal(t, tt.logWarning, buf.Len() > 0, "warn output")

			buf.Reset()
			log.Error().Msg("error msg")
			assert.Positive(t, buf.Len(), "error is never filtered")
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "bogus", Format: "json"}, &buf)

	// Falls back to info level
	log.Debug().Msg("should be dropped")
	assert.Zero(t, buf.Len())

	log.Info().Msg("should appear")
	assert.Positive(t, buf.Len())
}

func TestNewLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:        "info",
		Format:       "json",
		EnableCaller: true,
	}

	log := NewWithOutput(cfg, &buf)
	log.Info().Msg("with caller")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "caller")
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	child := log.WithContext("component", "search")
	child.Info().Msg("contextual")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "search", entry["component"])
}

func TestLogger_WithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.WithRequestID("req-123").Info().Msg("request scoped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestLogger_WithSession(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.WithSession("sel-42").Info().Msg("session scoped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sel-42", entry["session_id"])
}

func TestLogger_WithOperation(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.WithOperation("search_advanced").Info().Msg("operation scoped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "search_advanced", entry["operation"])
}

func TestLogger_ContextDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	_ = log.WithContext("child_only", "yes")
	log.Info().Msg("parent entry")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "child_only")
}

func TestNop(t *testing.T) {
	log := Nop()

	// Must not panic and must produce no output anywhere.
	assert.NotPanics(t, func() {
		log.Info().Str("k", "v").Msg("dropped")
		log.Error().Msg("also dropped")
		log.WithRequestID("id").Warn().Msg("still dropped")
	})
}

func TestLogger_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.Info().
		Str("session_id", "sel-9").
		Int("total_results", 14).
		Float64("duration_ms", 12.5).
		Bool("cache_hit", true).
		Msg("Search completed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sel-9", entry["session_id"])
	assert.Equal(t, float64(14), entry["total_results"])
	assert.Equal(t, 12.5, entry["duration_ms"])
	assert.Equal(t, true, entry["cache_hit"])
	assert.Equal(t, "Search completed", entry["message"])
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.EnableCaller)
	assert.Equal(t, "tour-search", cfg.ServiceName)
}
