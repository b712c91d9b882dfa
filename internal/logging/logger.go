// Package logging provides leveled, styled logging for komodo commands.
//
// All output goes to stderr. Stdout is reserved for emitted shell code:
// activate and disable are wrapped in eval by the calling shell, so any
// stray line on stdout would be executed as shell input.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// DebugVar enables debug logging for the whole process when set in the
// environment to anything other than empty or "0".
const DebugVar = "KOMODO_DEBUG"

var (
	output io.Writer = os.Stderr
	logger           = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
	})
	l.SetStyles(levelStyles())
	if debugEnabled(os.Getenv(DebugVar)) {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// levelStyles configures the label and color for each level. The colors
// are chosen to read on both light and dark terminals; lipgloss degrades
// to plain text when stderr is not a terminal.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

func debugEnabled(value string) bool {
	return value != "" && value != "0"
}

// Debug logs troubleshooting detail. Hidden unless KOMODO_DEBUG is set or
// the level was lowered with SetLevel.
func Debug(format string, v ...any) {
	logger.Debug(fmt.Sprintf(format, v...))
}

// Info logs operational messages.
func Info(format string, v ...any) {
	logger.Info(fmt.Sprintf(format, v...))
}

// Warn logs conditions worth noting that do not stop the operation.
func Warn(format string, v ...any) {
	logger.Warn(fmt.Sprintf(format, v...))
}

// Error logs failures.
func Error(format string, v ...any) {
	logger.Error(fmt.Sprintf(format, v...))
}

// Success logs a completed operation with a green SUCCESS label. It sits
// at INFO level internally, so it obeys the same filtering as Info.
func Success(format string, v ...any) {
	if logger.GetLevel() > log.InfoLevel {
		return
	}

	styles := levelStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))

	l := log.NewWithOptions(output, log.Options{
		ReportTimestamp: false,
	})
	l.SetStyles(styles)
	l.Info(fmt.Sprintf(format, v...))
}

// SetLevel sets the minimum level from a string. Unknown strings fall back
// to INFO.
func SetLevel(level string) {
	var logLevel log.Level
	switch level {
	case "DEBUG":
		logLevel = log.DebugLevel
	case "INFO":
		logLevel = log.InfoLevel
	case "WARN":
		logLevel = log.WarnLevel
	case "ERROR":
		logLevel = log.ErrorLevel
	default:
		logLevel = log.InfoLevel
	}
	logger.SetLevel(logLevel)
}

// SetOutput redirects all log output, preserving the current level. Tests
// use it to capture output; commands never call it.
func SetOutput(w io.Writer) {
	level := logger.GetLevel()
	output = w
	logger = newLogger(w)
	logger.SetLevel(level)
}
