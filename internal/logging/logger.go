package logging

import (
	"io"
	"os"
	"time"

	"github.com/belphemur/dayscheduler/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Initialize sets up the global logger on stderr. Stdout is reserved for
// expanded records.
func Initialize(isDevelopment bool) {
	InitializeWithWriter(os.Stderr, isDevelopment)
}

// InitializeWithWriter sets up the global logger writing to out
func InitializeWithWriter(out io.Writer, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	output := out
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", constants.AppName).
		Caller().
		Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if isDevelopment {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// GetLogger returns a logger with the component field set
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// IsValidLevel reports whether SetLogLevel understands level
func IsValidLevel(level string) bool {
	_, ok := levels[level]
	return ok
}

var levels = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
	"fatal": zerolog.FatalLevel,
	"panic": zerolog.PanicLevel,
}

// SetLogLevel sets the global log level, defaulting to info for unknown values
func SetLogLevel(level string) {
	lvl, ok := levels[level]
	if !ok {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
