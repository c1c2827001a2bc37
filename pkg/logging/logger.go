// Package logging provides structured logging for stocksync using zerolog.
// Terminals get human-readable console output; pipes and schedulers get JSON.
//
// The CLI builds one logger at start-up and hands it to the sync client, which
// threads it through context.Context:
//
//	logger := logging.NewLoggerFromConfig(cfg)
//	ctx := logging.WithLogger(context.Background(), &logger)
//	ctx = logging.WithMarketplace(ctx, "yandex")
//	logging.FromContext(ctx).Info().Int("offers", n).Msg("Catalog fetched")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// defaultLogger is used when no logger travels in the context.
	defaultLogger = createDefaultLogger()

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

// createDefaultLogger creates a logger with default settings.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isatty() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	return zerolog.New(writer).
		Level(parseLevel(os.Getenv("LOG_LEVEL"))).
		With().
		Timestamp().
		Logger()
}

// Default returns the fallback logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the fallback logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level log event on the fallback logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event on the fallback logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event on the fallback logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event on the fallback logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// isatty checks if stderr is a terminal.
func isatty() bool {
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
