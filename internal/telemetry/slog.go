// Package telemetry configures process-wide structured logging.
package telemetry

import (
	"log/slog"
	"os"
	"strings"
)

// LevelCritical marks events above error severity, such as a key being
// forcibly disabled.
const LevelCritical = slog.Level(12)

// SetupLogger configures the global slog default logger based on the
// supplied format and level strings read from the environment.
//
// format: "text" → TextHandler (human readable; suitable for local runs)
//
//	anything else → JSONHandler (machine readable; default, since Lambda
//	output lands in CloudWatch Logs)
//
// level: "debug", "info", "warn", "error" (case-insensitive); defaults to "info".
//
// The configured logger is installed as the default so every component that
// is not handed an explicit *slog.Logger still emits structured records.
func SetupLogger(format, level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceLevelName,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// replaceLevelName renders records at or above LevelCritical with their own
// label instead of slog's "ERROR+4".
func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
			a.Value = slog.StringValue("CRITICAL")
		}
	}
	return a
}
