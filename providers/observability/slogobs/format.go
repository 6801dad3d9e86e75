package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatText is slog's key=value text format (default).
	FormatText Format = "text"

	// FormatJSON is one JSON object per line, for log aggregation.
	FormatJSON Format = "json"
)

const (
	// EnvLogFormat selects the output format ("text" or "json").
	EnvLogFormat = "OAICLIENT_LOG_FORMAT"

	// EnvLogLevel selects the minimum level (DEBUG, INFO, WARN, ERROR).
	EnvLogLevel = "OAICLIENT_LOG_LEVEL"
)

// ParseFormat parses a format string. Unknown values map to FormatText.
func ParseFormat(s string) Format {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// GetFormatFromEnv reads OAICLIENT_LOG_FORMAT, falling back to LOG_FORMAT.
func GetFormatFromEnv() Format {
	if format := os.Getenv(EnvLogFormat); format != "" {
		return ParseFormat(format)
	}
	return ParseFormat(os.Getenv("LOG_FORMAT"))
}

// GetLogLevelFromEnv reads OAICLIENT_LOG_LEVEL, falling back to LOG_LEVEL.
// Default: INFO
func GetLogLevelFromEnv() slog.Level {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		return slog.LevelInfo
	}
	return ParseLogLevel(level)
}

// ParseLogLevel parses DEBUG, INFO, WARN, WARNING or ERROR (case-insensitive).
// Unknown values fall back to INFO with a warning on stderr.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Warning: Unknown log level '%s', using INFO\n", level)
		return slog.LevelInfo
	}
}
