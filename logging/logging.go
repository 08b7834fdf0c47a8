package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	// DebugLevel indicates a log message's level of criticality
	DebugLevel = "debug"
	// InfoLevel indicates a log message's level of criticality
	InfoLevel = "info"
	// WarnLevel indicates a log message's level of criticality
	WarnLevel = "warn"
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel = "error"
)

// LevelFilter translates a level name to a go-kit level filter
func LevelFilter(name string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DebugLevel:
		return level.AllowDebug(), nil
	case "", InfoLevel:
		return level.AllowInfo(), nil
	case WarnLevel, "warning":
		return level.AllowWarn(), nil
	case ErrorLevel:
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("%q is an unknown log level", name)
	}
}

// NewLogger creates a logfmt logger writing to w, which discards messages below the named level
func NewLogger(levelName string, w io.Writer) (log.Logger, error) {
	filter, err := LevelFilter(levelName)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, filter)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}

// OrNop returns logger, or a logger which discards everything if logger is nil
func OrNop(logger log.Logger) log.Logger {
	if logger == nil {
		return log.NewNopLogger()
	}
	return logger
}
