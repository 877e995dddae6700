/*
Package logger builds the zerolog loggers sessions write to.
*/
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

// New builds a logger for the runtime environment. Development environments get
// human readable console output, every other environment gets JSON. Writers, when
// given, replace stdout.
func New(env string, level string, writers ...io.Writer) (*zerolog.Logger, error) {
	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.DurationFieldUnit = time.Millisecond

	var output io.Writer = os.Stdout
	if len(writers) > 0 {
		output = io.MultiWriter(writers...)
	}

	if isDevelopment(env) {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: timeFormat, NoColor: len(writers) > 0}
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(parsedLevel)
	return &logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// ParseLevel reads a level name, ignoring case. An empty name is info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

func isDevelopment(env string) bool {
	return strings.EqualFold(env, "development") || strings.EqualFold(env, "dev")
}
