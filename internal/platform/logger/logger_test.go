package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pet-catalog/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("loud"))
}

func TestLogger_JSON_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "pet-catalog", Out: &buf})

	l.With(map[string]any{"component": "test", "": "dropped"}).
		Info("pet inserted", map[string]any{"id": 7})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "pet inserted", entry["message"])
	assert.Equal(t, "pet-catalog", entry["app"])
	assert.Equal(t, "test", entry["component"])
	assert.EqualValues(t, 7, entry["id"])
	assert.NotContains(t, entry, "")
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatJSON, Out: &buf})

	l.Info("hidden", nil)
	l.Debug("hidden", nil)
	assert.Zero(t, buf.Len())

	l.Warn("shown", nil)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatText, Out: &buf})

	l.Error("delete failed", map[string]any{"address": "content://pet-catalog/pets"})
	out := buf.String()
	assert.Contains(t, out, "delete failed")
	assert.Contains(t, out, "address=content://pet-catalog/pets")
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(config.Config{LogLevel: "warn", LogFormat: "json", AppName: "petctl"}, &buf)

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "petctl", entry["app"])
}
