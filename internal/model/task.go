package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskIDPrefix is prepended to generated task identifiers
const TaskIDPrefix = "task-"

// Task represents a single download task loaded from the task file.
// Tasks are immutable after loading; processing state lives in TaskOutcome.
type Task struct {
	ID    string `json:"-"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ResolvedTarget holds the URLs extracted from a task's page.
// Either field may be empty when extraction found nothing.
type ResolvedTarget struct {
	MediaURL   string
	CaptionURL string
}

// TaskOutcome is the final result of processing one task
type TaskOutcome struct {
	Task   Task
	Status TaskStatus
}

// Success reports whether the task produced its output file
func (o TaskOutcome) Success() bool {
	return o.Status.IsSuccess()
}

// Summary aggregates outcomes across a whole run
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// Record counts a single outcome into the summary
func (s *Summary) Record(outcome TaskOutcome) {
	s.Total++
	switch outcome.Status {
	case TaskStatusCompleted:
		s.Succeeded++
	case TaskStatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// NewTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func NewTaskID() string {
	// Use UUID v7 which includes timestamp and is naturally ordered
	// This allows task IDs in logs to be sorted chronologically
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
