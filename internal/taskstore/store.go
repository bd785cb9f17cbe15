package taskstore

import (
	"encoding/json"
	"log"
	"os"

	"github.com/ytget/stream-downloader/internal/model"
)

// Store loads download tasks from a JSON task file
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore creates a task store for the given file path
func NewStore(path string, logger *log.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the task file and returns its tasks in declaration order.
// A missing file or malformed JSON is logged and yields an empty list;
// the caller then finishes with zero work done instead of crashing.
func (s *Store) Load() []model.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Printf("Failed to read task file %s: %v", s.path, err)
		return nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Printf("Failed to parse task file %s: %v", s.path, err)
		return nil
	}

	loaded := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.URL == "" {
			s.logger.Printf("Skipping task with empty URL (title: %q)", task.Title)
			continue
		}
		task.ID = model.NewTaskID()
		loaded = append(loaded, task)
	}
	return loaded
}
