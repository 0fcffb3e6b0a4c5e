package domain

import (
	"fmt"
	"time"
)

// DailyPlanEntry is the durable form of a StudyBlock plus a mutable status
// driven by student activity.
type DailyPlanEntry struct {
	ID       string
	UserID   string
	CourseID string

	Date            time.Time
	TaskType        TaskType
	ContentKind     ContentKind
	ModuleID        string
	TargetQuizID    string
	IsOffPlatform   bool
	EstimatedBlocks int
	Order           int

	Status    EntryStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDailyPlanEntry builds a persisted entry from a generated block.
func NewDailyPlanEntry(id, userID, courseID string, b StudyBlock, now time.Time) *DailyPlanEntry {
	return &DailyPlanEntry{
		ID:              id,
		UserID:          userID,
		CourseID:        courseID,
		Date:            b.Date,
		TaskType:        b.TaskType,
		ContentKind:     b.ContentKind,
		ModuleID:        b.ModuleID,
		TargetQuizID:    b.TargetQuizID,
		IsOffPlatform:   b.IsOffPlatform,
		EstimatedBlocks: b.EstimatedBlocks,
		Order:           b.Order,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// MarkInProgress transitions a pending entry to in-progress.
func (e *DailyPlanEntry) MarkInProgress(now time.Time) error {
	if e.Status == StatusCompleted {
		return fmt.Errorf("cannot start entry %s: already completed", e.ID)
	}
	e.Status = StatusInProgress
	e.UpdatedAt = now
	return nil
}

// MarkCompleted transitions an entry to completed. Completing an already
// completed entry is a no-op.
func (e *DailyPlanEntry) MarkCompleted(now time.Time) error {
	if e.Status == StatusCompleted {
		return nil
	}
	e.Status = StatusCompleted
	e.UpdatedAt = now
	return nil
}

// Reset returns an entry to pending, e.g. when a student unchecks a task.
func (e *DailyPlanEntry) Reset(now time.Time) error {
	e.Status = StatusPending
	e.UpdatedAt = now
	return nil
}
