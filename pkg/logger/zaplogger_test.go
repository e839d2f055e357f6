package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_InfoWritesFieldsAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{AppName: "test-app", AppEnv: "test", Level: "debug", Format: "json"}, &buf)

	l.Info("fetched samples", map[string]any{"count": 3})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "fetched samples", entries[0]["msg"])
	assert.Equal(t, float64(3), entries[0]["count"])
	assert.Equal(t, "test-app", entries[0]["app_name"])
	assert.Contains(t, entries[0]["caller_func"], "TestLogger_InfoWritesFieldsAndCaller")
	assert.NotEmpty(t, entries[0]["timestamp"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{AppName: "test-app", Level: "warn"}, &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warning("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
}

func TestLogger_ErrorGoesToHooks(t *testing.T) {
	var out, hook bytes.Buffer
	l := New(Options{AppName: "test-app", Level: "info", Hooks: []io.Writer{&hook}}, &out)

	l.Warning("not for hooks")
	l.Error(errors.New("boom"), map[string]any{"kind": "temperature"})

	hookEntries := decodeLines(t, &hook)
	require.Len(t, hookEntries, 1)
	assert.Equal(t, "boom", hookEntries[0]["error"])
	assert.Equal(t, "temperature", hookEntries[0]["kind"])
	assert.Contains(t, hookEntries[0]["caller_func"], "TestLogger_ErrorGoesToHooks")

	assert.Len(t, decodeLines(t, &out), 2)
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("test-app", &buf)

	require.NoError(t, l.Log("key", "value", "dangling"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "value", entries[0]["key"])
}
