package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text")

	Info("session activated", "session", 7, "channel", 2)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "session activated")
	assert.Contains(t, out, "session=7")
	assert.Contains(t, out, "channel=2")
	assert.NotContains(t, out, "\033[", "no color codes on a plain writer")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json")

	Warn("continuation point expired", "session", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "continuation point expired", record["msg"])
	assert.Equal(t, float64(3), record["session"])
	assert.Equal(t, "WARN", record["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text")

	Debug("dropped")
	Info("dropped too")
	Warn("kept")

	lines := strings.TrimSpace(buf.String())
	assert.NotContains(t, lines, "dropped")
	assert.Contains(t, lines, "kept")
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text")
	SetLevel("NOISY")

	Info("still logged")
	assert.Contains(t, buf.String(), "still logged")
}
