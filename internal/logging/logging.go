// Package logging configures the console's file logger. Console output stays
// clean for the operator; diagnostics go to ~/.prodline/prodline.log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

// GetLogger returns the shared logger, initializing a discard logger if
// Setup has not run.
func GetLogger() *logrus.Logger {
	if logg == nil {
		logg = logrus.New()
		logg.SetOutput(io.Discard)
	}
	return logg
}

// Setup opens the log file and configures the shared logger. An unknown
// level falls back to info.
func Setup(level string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".prodline")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create .prodline directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(dir, "prodline.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(file)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logg.SetLevel(parsed)
	return nil
}
