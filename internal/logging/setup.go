// Package logging configures the process-wide slog logger.
//
// Logs always default to stderr: stdout carries registry values and must stay machine-readable.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// level is the parsed form of a level name, shared by both handlers.
type level struct {
	charm           log.Level
	slog            slog.Level
	reportCaller    bool
	reportTimestamp bool
}

// parseLevel maps a level name to handler settings. Unknown names fall back to info.
func parseLevel(name string) level {
	switch strings.ToLower(name) {
	case "trace":
		return level{charm: log.DebugLevel, slog: slog.LevelDebug, reportCaller: true, reportTimestamp: true}
	case "debug":
		return level{charm: log.DebugLevel, slog: slog.LevelDebug, reportTimestamp: true}
	case "warn", "warning":
		return level{charm: log.WarnLevel, slog: slog.LevelWarn}
	case "error":
		return level{charm: log.ErrorLevel, slog: slog.LevelError}
	default:
		return level{charm: log.InfoLevel, slog: slog.LevelInfo}
	}
}

// SetupHandlerText configures a charmbracelet/log text handler with the provided writer and log level
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	lvl := parseLevel(logLevel)
	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: lvl.reportTimestamp,
		ReportCaller:    lvl.reportCaller,
		Level:           lvl.charm,
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer and log level
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	lvl := parseLevel(logLevel)
	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     lvl.slog,
		AddSource: lvl.reportCaller,
	})
}

// SetupLogger builds a logger for the given format and level, installs it as the slog default
// and returns it.
func SetupLogger(format Format, logLevel string, writer io.Writer) (*slog.Logger, error) {
	var handler slog.Handler
	switch Format(strings.ToLower(string(format))) {
	case FormatText, "":
		handler = SetupHandlerText(logLevel, writer)
	case FormatJSON:
		handler = SetupHandlerJSON(logLevel, writer)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
