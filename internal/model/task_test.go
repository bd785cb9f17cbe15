package model

import (
	"strings"
	"testing"
)

func TestNewTaskID(t *testing.T) {
	id := NewTaskID()
	if !strings.HasPrefix(id, TaskIDPrefix) {
		t.Errorf("Expected task ID with prefix %q, got %q", TaskIDPrefix, id)
	}

	other := NewTaskID()
	if id == other {
		t.Errorf("Expected unique task IDs, got %q twice", id)
	}
}

func TestTaskStatusIsSuccess(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusCompleted, true},
		{TaskStatusSkipped, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		if result := test.status.IsSuccess(); result != test.expected {
			t.Errorf("%s.IsSuccess() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestSummaryRecord(t *testing.T) {
	var summary Summary
	outcomes := []TaskOutcome{
		{Status: TaskStatusCompleted},
		{Status: TaskStatusCompleted},
		{Status: TaskStatusError},
		{Status: TaskStatusSkipped},
	}

	for _, outcome := range outcomes {
		summary.Record(outcome)
	}

	if summary.Total != 4 {
		t.Errorf("Total = %d, expected 4", summary.Total)
	}
	if summary.Succeeded != 2 {
		t.Errorf("Succeeded = %d, expected 2", summary.Succeeded)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, expected 1", summary.Failed)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, expected 1", summary.Skipped)
	}
}

func TestTaskOutcomeSuccess(t *testing.T) {
	completed := TaskOutcome{Status: TaskStatusCompleted}
	if !completed.Success() {
		t.Error("Expected completed outcome to be a success")
	}

	skipped := TaskOutcome{Status: TaskStatusSkipped}
	if skipped.Success() {
		t.Error("Expected skipped outcome not to be a success")
	}
}
