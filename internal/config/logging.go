package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a timestamped logger writing to w. The level comes from
// KNOCKOFFS_LOG_LEVEL and falls back to level when unset or unknown.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if parsed, err := log.ParseLevel(GetEnv("KNOCKOFFS_LOG_LEVEL", "")); err == nil {
		level = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "knockoffs",
		ReportTimestamp: true,
	})
}
