package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf, level)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, zerolog.InfoLevel) })
	return buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestInfo_KeyValueFields(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	Info("Server starting", "address", ":8080", "version", "1.0.0")

	entry := decode(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Server starting", entry["message"])
	assert.Equal(t, ":8080", entry["address"])
	assert.Equal(t, "1.0.0", entry["version"])
}

func TestError_BareErrorBecomesErrorField(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	Error("Failed to find case", errors.New("case not found"))

	entry := decode(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "case not found", entry["error"])
}

func TestError_KeyedError(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	Error("Server shutdown error", "error", errors.New("closed"))

	assert.Equal(t, "closed", decode(t, buf)["error"])
}

func TestDebug_FilteredBelowLevel(t *testing.T) {
	buf := capture(t, zerolog.InfoLevel)

	Debug("hidden", "k", "v")

	assert.Zero(t, buf.Len())
}

func TestFatal_CallsExit(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	code := -1
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitFunc = os.Exit })

	Fatal("boom", "reason", "test")

	assert.Equal(t, 1, code)
	assert.Equal(t, "fatal", decode(t, buf)["level"])
}
