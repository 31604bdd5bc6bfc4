package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len(), "info message written at warn level")

	log.Warn().Str("sheet", "Pesos").Msg("shown")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Pesos", entry["sheet"])
	assert.Equal(t, "shown", entry["message"])
}

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "verbose", Output: &buf})
	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Pretty: true, Output: &buf})
	log.Debug().Msg("loaded")
	assert.Contains(t, buf.String(), "loaded")
	assert.NotContains(t, buf.String(), `"message"`)
}
