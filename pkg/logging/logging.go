// Package logging configures structured logging for scout runs.
//
// Logs go to stderr for the operator, and each run can additionally be
// mirrored to a per-run file under the log directory so failed automation
// runs stay inspectable after the terminal scrolls away.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New creates a logger at the named level. Unknown level names fall back to
// info rather than failing a run over a typo.
func New(levelName string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// NewRunID returns a fresh identifier tying together one run's log file and
// screenshot artifacts.
func NewRunID() string {
	return uuid.NewString()
}

// DefaultDir returns the per-user log directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".scout", "logs"), nil
}

// AttachRunFile mirrors the logger's output into dir/run_<runID>.log, keeping
// stderr output intact. The returned close function flushes and closes the
// file; the returned path is where the log landed.
func AttachRunFile(log *logrus.Logger, dir, runID string) (path string, closeFn func() error, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating log directory: %w", err)
	}

	path = filepath.Join(dir, fmt.Sprintf("run_%s.log", runID))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", nil, fmt.Errorf("opening run log: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return path, file.Close, nil
}
