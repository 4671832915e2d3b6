// Package logger configures the zerolog loggers used across imdburl.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Format     string // "pretty" or "json"
	WithCaller bool
	Output     io.Writer
	TimeFormat string
}

// DefaultConfig returns sensible defaults for logging. Logs go to stderr so
// stdout only ever carries the URL.
func DefaultConfig() *Config {
	return &Config{
		Level:      "warn",
		Format:     "pretty",
		WithCaller: false,
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// InitLogger creates and configures a new zerolog logger
func InitLogger(config *Config) zerolog.Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Output == nil {
		config.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(config.Level))
	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	var output io.Writer = config.Output
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: "15:04:05",
		}
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("app", "imdburl").
		Logger()

	if config.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup configures the logger from resolved settings, writing to stderr
func Setup(level, format string, withCaller bool) zerolog.Logger {
	config := DefaultConfig()
	config.Level = level
	config.Format = format
	config.WithCaller = withCaller
	return InitLogger(config)
}

// ForComponent creates a logger with component context
func ForComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// ForRequest creates a logger with Lambda request context
func ForRequest(logger zerolog.Logger, requestID, routeKey string) zerolog.Logger {
	return logger.With().
		Str("request_id", requestID).
		Str("route", routeKey).
		Logger()
}

// ForMCP creates a logger with MCP context
func ForMCP(logger zerolog.Logger, tool string) zerolog.Logger {
	return logger.With().
		Str("mcp_tool", tool).
		Str("component", "mcp").
		Logger()
}
