package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	tests := []struct {
		level string
		msg   string
		kv    string
	}{
		{"DEBUG", "dbg", "a=1"},
		{"INFO", "inf", "b=2"},
		{"WARN", "wrn", "c=3"},
		{"ERROR", "err", "d=4"},
	}
	for _, tc := range tests {
		assert.Contains(t, out, "level="+tc.level)
		assert.Contains(t, out, "msg="+tc.msg)
		assert.Contains(t, out, tc.kv)
	}
}

func TestSlogLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelDebug).With("module", "http_server", "user", "alice")

	log.Info(context.Background(), "hello", "k", "v")

	for _, s := range []string{"level=INFO", "msg=hello", "module=http_server", "user=alice", "k=v"} {
		if !strings.Contains(buf.String(), s) {
			t.Fatalf("expected %q in output, got:\n%s", s, buf.String())
		}
	}
}

func TestNewJSON_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, slog.LevelInfo)

	log.Info(context.Background(), "login", "user_id", "u-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "login", rec["msg"])
	assert.Equal(t, "u-1", rec["user_id"])
}

func TestNop_DiscardsAndChains(t *testing.T) {
	l := Nop()
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
	require.NotNil(t, l.With("k", "v"))
}
