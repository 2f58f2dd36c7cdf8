package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEntryCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{Level: "info", Format: "json", Service: "astro"}, &buf)
	require.NoError(t, err)

	l.With(String("route", "/api/natal")).Info("chart computed",
		Int("aspects", 12),
		Float64("latitude", 41.9),
		Bool("cached", true),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "chart computed", entry["message"])
	assert.Equal(t, "astro", entry["service"])
	assert.Equal(t, "/api/natal", entry["route"])
	assert.Equal(t, float64(12), entry["aspects"])
	assert.Equal(t, 41.9, entry["latitude"])
	assert.Equal(t, true, entry["cached"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{Level: "warn"}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Error("visible", Error(errors.New("boom")))
	assert.Contains(t, buf.String(), "boom")
}

func TestInvalidLevel(t *testing.T) {
	_, err := NewWithWriter(&Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))

	l.WithContext(ctx).Info("hello")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])

	assert.Same(t, l, l.WithContext(context.Background()))
}

func TestWithKeepsFieldTypes(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{}, &buf)
	require.NoError(t, err)

	l.With(Int("steps", 3), Error(nil)).Warn("slow", Duration("took", 1500*time.Millisecond))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(3), entry["steps"])
	assert.Equal(t, float64(1500), entry["took"])
	assert.NotContains(t, entry, "error")
}

func TestInvalidFormat(t *testing.T) {
	_, err := NewWithWriter(&Config{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
