package config

import (
	"path/filepath"

	"github.com/ytget/stream-downloader/internal/platform"
)

// Default values
const (
	DefaultTaskFile   = "download_tasks.json"
	DefaultMaxWorkers = 3

	MinWorkers = 1
	MaxWorkers = 10
)

// Default directory names under the user's Desktop
const (
	DefaultMediaDirName    = "Course"
	DefaultCaptionsDirName = "st.vtt"
	LogsDirName            = "logs"
)

// Settings holds the resolved run configuration
type Settings struct {
	TaskFile    string
	Workers     int
	MediaDir    string
	CaptionsDir string
}

// ApplyDefaults fills empty fields with defaults and clamps ranges.
// Directory defaults live under the user's Desktop, matching the
// historical layout users already have populated.
func (s *Settings) ApplyDefaults() error {
	if s.TaskFile == "" {
		s.TaskFile = DefaultTaskFile
	}
	if s.Workers == 0 {
		s.Workers = DefaultMaxWorkers
	}
	if s.Workers < MinWorkers {
		s.Workers = MinWorkers
	}
	if s.Workers > MaxWorkers {
		s.Workers = MaxWorkers
	}

	if s.MediaDir == "" || s.CaptionsDir == "" {
		desktop, err := platform.GetHomeDesktopDir()
		if err != nil {
			return err
		}
		if s.MediaDir == "" {
			s.MediaDir = filepath.Join(desktop, DefaultMediaDirName)
		}
		if s.CaptionsDir == "" {
			s.CaptionsDir = filepath.Join(desktop, DefaultCaptionsDirName)
		}
	}
	return nil
}

// LogsDir returns the per-run log directory under the media directory
func (s *Settings) LogsDir() string {
	return filepath.Join(s.MediaDir, LogsDirName)
}
