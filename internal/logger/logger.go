package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup configures the process logger. Output always goes to stderr so step
// output on stdout stays clean for the operator. Debug mode lowers the level
// and adds caller and stack information.
func Setup(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	if debug {
		logger = logger.With().Caller().Stack().Logger()
	}

	return logger
}
