// Package logging wires logrus to a file so log output never draws over the TUI.
package logging

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Setup returns a logger writing to path at the given level.
// An empty path discards everything; the returned cleanup closes the files.
func Setup(path, level string) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		DisableQuote:     true,
		QuoteEmptyFields: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if path == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(f)

	// Bubble Tea's own debug output goes to the same file
	tf, err := tea.LogToFile(path, "tea")
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	cleanup := func() {
		tf.Close()
		f.Close()
	}
	logger.Debugf("logging configured with level: %s", lvl)
	return logger, cleanup, nil
}

// Discard returns a logger that drops everything, used by tests and one-shot commands
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
