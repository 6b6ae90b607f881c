// Package logging builds the slog logger used for progress messages.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Level colors follow the CLI palette.
var levelColors = map[log.Level]lipgloss.Color{
	log.DebugLevel: lipgloss.Color("8"),
	log.InfoLevel:  lipgloss.Color("39"),
	log.WarnLevel:  lipgloss.Color("214"),
	log.ErrorLevel: lipgloss.Color("196"),
}

// New returns a logger writing styled lines to w at level and above.
func New(w io.Writer, level log.Level) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	for lvl, color := range levelColors {
		styles.Levels[lvl] = styles.Levels[lvl].Foreground(color)
	}
	handler.SetStyles(styles)

	return slog.New(handler)
}

// Level picks the log level: verbose wins over quiet, and either wins over
// the configured name.
func Level(configured string, verbose, quiet bool) (log.Level, error) {
	switch {
	case verbose:
		return log.DebugLevel, nil
	case quiet:
		return log.WarnLevel, nil
	}

	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(configured)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", configured, err)
	}
	return level, nil
}
