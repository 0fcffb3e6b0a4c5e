package contract

import (
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// GeneratePlanRequest carries a student's scheduling inputs for one course.
// Dates use YYYY-MM-DD. Now overrides the generation clock in tests.
type GeneratePlanRequest struct {
	UserID            string `validate:"required"`
	CourseID          string `validate:"required"`
	ExamDate          string `validate:"required,datetime=2006-01-02"`
	StudyHoursPerWeek int    `validate:"required,min=1,max=80"`
	SelfRating        string `validate:"required,oneof=NOVICE INTERMEDIATE RETAKER"`
	PreferredDays     []int  `validate:"omitempty,dive,min=0,max=6"`
	Now               *time.Time
}

// ValidationResult is the pure, pre-generation feasibility verdict.
type ValidationResult struct {
	Valid         bool
	OmitPhase1    bool
	AdjustedHours int
	Warnings      []string
}

// GeneratePlanResult summarizes a completed generation run.
type GeneratePlanResult struct {
	Validation    ValidationResult
	TotalWeeks    int
	Phase1EndWeek int
	LearnBlocks   int
	ReviewBlocks  int
	PracticeBlocks int
	EntryCount    int
	GeneratedAt   time.Time
}

// WeeklyPlanRequest asks for the read-side weekly view of a stored plan.
type WeeklyPlanRequest struct {
	UserID   string `validate:"required"`
	CourseID string `validate:"required"`
}

type WeeklyPlanResponse struct {
	Weeks []domain.WeeklyPlanWeek
}

// NextItemsRequest resolves a review session slot into concrete item IDs at
// consumption time.
type NextItemsRequest struct {
	UserID   string `validate:"required"`
	CourseID string `validate:"required"`
	Limit    int    `validate:"min=0"`
}

type NextItemsResponse struct {
	ItemIDs []string
}
