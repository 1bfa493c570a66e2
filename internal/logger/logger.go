package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger with a JSON writer on os.Stdout.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		defaultLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		defaultLogger.Info().Msg("Logger initialized")
	})
}

// Get returns the initialized default logger.
// It calls Init() to ensure the logger is ready before returning it.
func Get() *zerolog.Logger {
	Init()
	return &defaultLogger
}

// SetLevel adjusts the global log level ("debug", "info", "warn", "error").
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// Info logs an informational message with alternating key/value pairs.
func Info(msg string, args ...any) {
	Get().Info().Fields(fields(args)).Msg(msg)
}

// Warn logs a warning message with alternating key/value pairs.
func Warn(msg string, args ...any) {
	Get().Warn().Fields(fields(args)).Msg(msg)
}

// Error logs an error message with alternating key/value pairs.
func Error(msg string, err error, args ...any) {
	Get().Error().Err(err).Fields(fields(args)).Msg(msg)
}

// Debug logs a debug message with alternating key/value pairs.
func Debug(msg string, args ...any) {
	Get().Debug().Fields(fields(args)).Msg(msg)
}

// fields converts alternating key/value args into a map for zerolog.
// Non-string keys and a trailing odd value are dropped.
func fields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		m[key] = args[i+1]
	}
	return m
}
