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
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInitWritesJSON(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf})
	log.Info().Str("k", "v").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "healthcare-admin-api", entry["service"])
}

func TestInitOnlyOnce(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	log := Init(Options{Output: &second})

	log.Info().Msg("once")
	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}
