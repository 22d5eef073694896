package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "mongo-remoteagent", entry["service"])
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	l := ForRepository(New(Config{Level: "debug", Output: &buf}), "mongodb://h/d.c", "gridfs")

	LogOperation(l, "delete", "A-1", time.Millisecond, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "delete", entry["operation"])
	assert.Equal(t, "A-1", entry["doc_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "gridfs", entry["mode"])
}

func TestForOperation(t *testing.T) {
	var buf bytes.Buffer
	l := ForOperation(New(Config{Level: "info", Output: &buf}), "enumerate")

	l.Info().Msg("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "enumerate", entry["operation"])
	assert.Equal(t, "done", entry["message"])
}
