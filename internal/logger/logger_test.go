package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pdv", Output: &buf})

	ctx := logg.WithRegisterID(context.Background(), "caixa-1")
	ctx = logg.WithFields(ctx, map[string]any{"sale_id": "abc"})
	logg.Info(ctx, "sale.recorded")

	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "pdv", entry["service"])
	assert.Equal(t, "caixa-1", entry["register_id"])
	assert.Equal(t, "abc", entry["sale_id"])
	assert.Equal(t, "sale.recorded", entry["message"])
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pdv", Output: &buf})

	logg.Error(context.Background(), "sale.record_failed", errors.New("boom"))

	entry := decode(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pdv", Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	logg.Warn(context.Background(), "kept")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "", want: zerolog.InfoLevel},
		{in: "DEBUG", want: zerolog.DebugLevel},
		{in: " warn ", want: zerolog.WarnLevel},
		{in: "nonsense", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}
