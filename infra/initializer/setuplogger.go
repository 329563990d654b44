package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// SetupLogger builds the process logger from cfg, writing to w, and installs
// it as the slog default.
func SetupLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}

	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

	levelStyle := func(symbol string, c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().SetString(symbol).Bold(true).Padding(0, 1).Foreground(c)
	}
	styles.Levels[log.ErrorLevel] = levelStyle("ERR", errorTxtColor)
	styles.Levels[log.WarnLevel] = levelStyle("WRN", warnTxtColor)
	styles.Levels[log.InfoLevel] = levelStyle("INF", infoTxtColor)
	styles.Levels[log.DebugLevel] = levelStyle("DBG", debugTxtColor)

	// ledger keys get their own colours so amounts stand out in text output
	keyColors := map[string]lipgloss.AdaptiveColor{
		"error":       errorTxtColor,
		"account":     infoTxtColor,
		"from":        infoTxtColor,
		"to":          infoTxtColor,
		"customer_id": infoTxtColor,
		"amount":      warnTxtColor,
		"balance":     warnTxtColor,
		"event_id":    debugTxtColor,
	}
	for key, c := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(c)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
