package model

// TaskStatus represents the terminal state of a processed task
type TaskStatus string

const (
	// TaskStatusCompleted means the transcode finished and the output file exists
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusSkipped means the output file already existed and nothing was done
	TaskStatusSkipped TaskStatus = "Skipped"

	// TaskStatusError means the task failed at some stage
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsSuccess returns true only for a completed transcode.
// A skipped task is neither a success nor a hard error.
func (ts TaskStatus) IsSuccess() bool {
	return ts == TaskStatusCompleted
}
