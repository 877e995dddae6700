package logger_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/neone/sendgrid-go/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(test *testing.T) {
	cases := map[string]zerolog.Level{
		"":         zerolog.InfoLevel,
		"debug":    zerolog.DebugLevel,
		"Warn":     zerolog.WarnLevel,
		"ERROR":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
	}

	for input, expected := range cases {
		level, err := logger.ParseLevel(input)
		assert.NoError(test, err, input)
		assert.Equal(test, expected, level, input)
	}

	_, err := logger.ParseLevel("not-a-level")
	assert.Error(test, err)
}

func TestJSONOutput(test *testing.T) {
	assert := assert.New(test)

	buffer := &bytes.Buffer{}
	log, err := logger.New("production", "info", buffer)
	require.NoError(test, err)

	log.Debug().Msg("hidden")
	log.Info().Str("path", "/v3/mail/send").Msg("dispatching request")

	line := make(map[string]interface{})
	require.NoError(test, json.Unmarshal(buffer.Bytes(), &line))
	assert.Equal("info", line["level"])
	assert.Equal("/v3/mail/send", line["path"])
	assert.Equal("dispatching request", line["message"])
	assert.NotContains(buffer.String(), "hidden")
}

func TestConsoleOutput(test *testing.T) {
	buffer := &bytes.Buffer{}
	log, err := logger.New("dev", "debug", buffer)
	require.NoError(test, err)

	log.Debug().Str("path", "/v3/stats").Msg("dispatching request")

	assert.Contains(test, buffer.String(), "dispatching request")
	assert.Contains(test, buffer.String(), "path=/v3/stats")
}

func TestInvalidLevel(test *testing.T) {
	_, err := logger.New("production", "loud")
	assert.Error(test, err)
}

func TestNop(test *testing.T) {
	assert.Equal(test, zerolog.Disabled, logger.Nop().GetLevel())
}
