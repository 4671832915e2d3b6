package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLogger_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := InitLogger(&Config{Level: "info", Format: "json", Output: &buf})

	builder := ForComponent(log, "builder")
	builder.Info().Str("param", "genres").Msg("built")
	log.Debug().Msg("suppressed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "expected exactly one JSON line, got %q", buf.String())
	assert.Equal(t, "imdburl", entry["app"])
	assert.Equal(t, "builder", entry["component"])
	assert.Equal(t, "genres", entry["param"])
	assert.Equal(t, "built", entry["message"])
}

func TestInitLogger_Pretty(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := InitLogger(&Config{Level: "warn", Format: "pretty", Output: &buf})
	log.Warn().Msg("unknown country")

	assert.Contains(t, buf.String(), "unknown country")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestContextLoggers(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	base := InitLogger(&Config{Level: "debug", Format: "json", Output: &buf})

	tool := ForMCP(base, "build_search_url")
	tool.Debug().Msg("call")
	assert.Contains(t, buf.String(), `"mcp_tool":"build_search_url"`)
	assert.Contains(t, buf.String(), `"component":"mcp"`)

	buf.Reset()
	request := ForRequest(base, "req-1", "POST /search")
	request.Debug().Msg("call")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"route":"POST /search"`)
}
