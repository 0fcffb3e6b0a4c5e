package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/repository"
	"github.com/mathieuvidal/examplan/internal/scheduler"
)

type weeklyService struct {
	content  repository.ContentRepo
	plans    repository.PlanRepo
	validate *validator.Validate
	observer OpObserver
}

// NewWeeklyService builds the read-side weekly projection. It only reads
// persisted state and can be called on every view without locking.
func NewWeeklyService(content repository.ContentRepo, plans repository.PlanRepo, observers ...OpObserver) WeeklyService {
	return &weeklyService{
		content:  content,
		plans:    plans,
		validate: validator.New(),
		observer: observerOrNoop(observers),
	}
}

func (s *weeklyService) WeeklyPlan(ctx context.Context, req contract.WeeklyPlanRequest) (resp *contract.WeeklyPlanResponse, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "weekly_plan", started, err, map[string]any{
			"user_id": req.UserID, "course_id": req.CourseID,
		})
	}()

	if err := s.validate.Struct(req); err != nil {
		return nil, &contract.PlanError{Code: contract.PlanErrValidation, Message: err.Error()}
	}

	cfg, err := s.plans.GetConfig(ctx, req.UserID, req.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.PlanError{Code: contract.PlanErrNotFound, Message: "no plan exists for this course"}
		}
		return nil, fmt.Errorf("loading plan config: %w", err)
	}

	entries, err := s.plans.ListByUserCourse(ctx, req.UserID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("loading plan entries: %w", err)
	}
	modules, err := s.content.ListModuleInventories(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("loading module inventories: %w", err)
	}
	mocks, err := s.content.ListMockExams(ctx, req.CourseID)
	if err != nil {
		// Mock titles degrade to a generic label.
		mocks = nil
	}

	totalWeeks := scheduler.WeeksUntilExam(cfg.CreatedAt, cfg.ExamDate)
	phase1End := scheduler.Phase1EndWeek(totalWeeks)

	weeks := scheduler.AggregateWeeks(scheduler.AggregateInput{
		Entries:       entries,
		Modules:       modules,
		MockExams:     mocks,
		Week1Start:    cfg.CreatedAt,
		Phase1EndWeek: phase1End,
	})
	return &contract.WeeklyPlanResponse{Weeks: weeks}, nil
}
