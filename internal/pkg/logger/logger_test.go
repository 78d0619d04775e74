package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(Config{Level: level, Output: &buf})
	t.Cleanup(func() {
		Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})
	})
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, WarnLevel)

	Debug().Msg("debug")
	Info().Msg("info")
	Warn().Msg("warn")
	Error().Msg("error")

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["message"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestWithFields(t *testing.T) {
	buf := captureLogs(t, DebugLevel)

	fieldLogger := WithField("component", "filestorage")
	fieldLogger.Debug().Msg("one")
	fieldsLogger := WithFields(map[string]interface{}{"app": "studybuddy", "mode": "test"})
	fieldsLogger.Info().Msg("two")

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "filestorage", entries[0]["component"])
	assert.Equal(t, "studybuddy", entries[1]["app"])
	assert.Equal(t, "test", entries[1]["mode"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, FatalLevel, ParseLevel("fatal"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}
