package service

import (
	"context"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/domain"
)

// PlanService owns plan generation: validate, generate, persist wholesale.
type PlanService interface {
	// Validate runs the pure feasibility check without generating or
	// persisting anything, so callers can preview warnings.
	Validate(ctx context.Context, req contract.GeneratePlanRequest) (*contract.ValidationResult, error)
	Generate(ctx context.Context, req contract.GeneratePlanRequest) (*contract.GeneratePlanResult, error)
}

// WeeklyService is the read-side projection of a stored plan.
type WeeklyService interface {
	WeeklyPlan(ctx context.Context, req contract.WeeklyPlanRequest) (*contract.WeeklyPlanResponse, error)
}

// ReviewService resolves review session slots into concrete item lists at
// consumption time, based on current progress rather than the plan's
// original estimate.
type ReviewService interface {
	NextFlashcards(ctx context.Context, req contract.NextItemsRequest) (*contract.NextItemsResponse, error)
	NextActivities(ctx context.Context, req contract.NextItemsRequest) (*contract.NextItemsResponse, error)
}

// EntryService mutates entry completion status as the student works.
type EntryService interface {
	SetStatus(ctx context.Context, entryID string, status domain.EntryStatus) error
}
