package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/stream-downloader/internal/platform"
)

// Log file naming
const (
	LogFilePrefix    = "download_"
	LogFileExtension = ".log"
	LogFileTimestamp = "20060102_150405"
)

// NewRunLogger creates a logger that writes to both stderr and a per-run
// timestamped file under logsDir. The returned closer releases the file.
//
// If the log file cannot be created the logger degrades to stderr only;
// a batch run should never die because of its log file.
func NewRunLogger(logsDir string) (*log.Logger, func() error, error) {
	stderrOnly := log.New(os.Stderr, "", log.LstdFlags)

	if err := platform.CreateDirectoryIfNotExists(logsDir); err != nil {
		return stderrOnly, func() error { return nil }, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := LogFilePrefix + time.Now().Format(LogFileTimestamp) + LogFileExtension
	file, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, platform.DefaultFilePermissions)
	if err != nil {
		return stderrOnly, func() error { return nil }, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.New(io.MultiWriter(os.Stderr, file), "", log.LstdFlags)
	return logger, file.Close, nil
}

// NewTestLogger returns a logger that discards all output
func NewTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
