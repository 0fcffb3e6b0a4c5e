package domain

import "time"

// WeeklyTaskKind distinguishes how a weekly task was derived.
type WeeklyTaskKind string

const (
	WeeklyTaskLearn    WeeklyTaskKind = "learn"
	WeeklyTaskReview   WeeklyTaskKind = "review"
	WeeklyTaskPractice WeeklyTaskKind = "practice"
)

// WeeklyPlanTask groups one or more plan entries sharing a semantic unit,
// e.g. all entries for "Video - Module 3" or "3 flashcard sessions".
type WeeklyPlanTask struct {
	Label       string
	Kind        WeeklyTaskKind
	ContentKind ContentKind
	ModuleID    string
	Status      EntryStatus
	EntryIDs    []string
	DoneCount   int
	TotalCount  int
}

// WeeklyPlanWeek is the read-side view of one plan week.
type WeeklyPlanWeek struct {
	Number    int
	StartDate time.Time
	EndDate   time.Time
	Phase     WeekPhase
	Tasks     []WeeklyPlanTask
	DoneCount int
	TaskCount int
}
