package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/db"
	"github.com/mathieuvidal/examplan/internal/domain"
	"github.com/mathieuvidal/examplan/internal/repository"
	"github.com/mathieuvidal/examplan/internal/scheduler"
)

type planService struct {
	content  repository.ContentRepo
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	validate *validator.Validate
	observer OpObserver
}

// NewPlanService builds the plan generation use case. The UnitOfWork is
// required: a regenerated plan replaces the previous one atomically.
func NewPlanService(content repository.ContentRepo, plans repository.PlanRepo, uow db.UnitOfWork, observers ...OpObserver) PlanService {
	return &planService{
		content:  content,
		plans:    plans,
		uow:      uow,
		validate: validator.New(),
		observer: observerOrNoop(observers),
	}
}

func (s *planService) Validate(ctx context.Context, req contract.GeneratePlanRequest) (*contract.ValidationResult, error) {
	cfg, now, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}
	modules, err := s.content.ListModuleInventories(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("loading module inventories: %w", err)
	}

	v := scheduler.Validate(*cfg, domain.CourseInventory{
		CourseID: req.CourseID,
		Modules:  modules,
	}, now)
	if v.Err != nil {
		return nil, planErrorFrom(v.Err)
	}
	return &contract.ValidationResult{
		Valid:         v.Valid,
		OmitPhase1:    v.OmitPhase1,
		AdjustedHours: v.AdjustedHours,
		Warnings:      v.Warnings,
	}, nil
}

func (s *planService) Generate(ctx context.Context, req contract.GeneratePlanRequest) (result *contract.GeneratePlanResult, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan_generate", started, err, map[string]any{
			"user_id": req.UserID, "course_id": req.CourseID,
		})
	}()

	cfg, now, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	inventory, err := s.loadInventory(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	out, err := scheduler.GeneratePlan(scheduler.GenerateInput{
		Config:    *cfg,
		Inventory: *inventory,
		Now:       now,
	})
	if err != nil {
		return nil, planErrorFrom(err)
	}

	entries := make([]*domain.DailyPlanEntry, len(out.Blocks))
	for i, b := range out.Blocks {
		entries[i] = domain.NewDailyPlanEntry(uuid.NewString(), cfg.UserID, cfg.CourseID, b, now)
	}

	// Old entries are discarded and replaced wholesale within one
	// transaction; a partial merge would orphan blocks computed against a
	// stale pace.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.SaveConfig(ctx, cfg); err != nil {
			return err
		}
		return txPlans.ReplaceAll(ctx, cfg.UserID, cfg.CourseID, entries)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting plan: %w", err)
	}

	res := &contract.GeneratePlanResult{
		Validation: contract.ValidationResult{
			Valid:         out.Validation.Valid,
			OmitPhase1:    out.Validation.OmitPhase1,
			AdjustedHours: out.Validation.AdjustedHours,
			Warnings:      out.Validation.Warnings,
		},
		TotalWeeks:    out.TotalWeeks,
		Phase1EndWeek: out.Phase1EndWeek,
		EntryCount:    len(entries),
		GeneratedAt:   now,
	}
	for _, b := range out.Blocks {
		switch b.TaskType {
		case domain.TaskLearn:
			res.LearnBlocks++
		case domain.TaskReview:
			res.ReviewBlocks++
		case domain.TaskPractice:
			res.PracticeBlocks++
		}
	}
	return res, nil
}

// loadInventory fans out the four independent content reads concurrently;
// they are read-only and keyed by the same course ID. A failed mock-exam
// read degrades to zero mocks instead of failing the run, since it only
// affects Practice anchor placement.
func (s *planService) loadInventory(ctx context.Context, courseID string) (*domain.CourseInventory, error) {
	course, err := s.content.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.PlanError{Code: contract.PlanErrNotFound, Message: "course not found: " + courseID}
		}
		return nil, fmt.Errorf("loading course: %w", err)
	}

	inv := &domain.CourseInventory{
		CourseID:      courseID,
		QuestionBanks: course.QuestionBanks,
		VideosEnabled: course.VideosEnabled,
	}

	var flashcards, activities map[string][]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		modules, err := s.content.ListModuleInventories(gctx, courseID)
		if err != nil {
			return fmt.Errorf("loading module inventories: %w", err)
		}
		inv.Modules = modules
		return nil
	})
	g.Go(func() error {
		exams, err := s.content.ListMockExams(gctx, courseID)
		if err != nil {
			// Degrade gracefully: practice falls back to quiz sessions only.
			return nil
		}
		inv.MockExams = exams
		return nil
	})
	g.Go(func() error {
		m, err := s.content.ListFlashcardIDsByModule(gctx, courseID)
		if err != nil {
			return fmt.Errorf("loading flashcards: %w", err)
		}
		flashcards = m
		return nil
	})
	g.Go(func() error {
		m, err := s.content.ListActivityIDsByModule(gctx, courseID)
		if err != nil {
			return fmt.Errorf("loading activities: %w", err)
		}
		activities = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, ids := range flashcards {
		inv.TotalFlashcards += len(ids)
	}
	for _, ids := range activities {
		inv.TotalActivities += len(ids)
	}
	return inv, nil
}

// parseRequest validates the raw request and converts it into a domain
// config plus the generation clock.
func (s *planService) parseRequest(req contract.GeneratePlanRequest) (*domain.StudyPlanConfig, time.Time, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, time.Time{}, &contract.PlanError{Code: contract.PlanErrValidation, Message: err.Error()}
	}

	examDate, err := time.Parse("2006-01-02", req.ExamDate)
	if err != nil {
		return nil, time.Time{}, &contract.PlanError{
			Code:    contract.PlanErrValidation,
			Message: fmt.Sprintf("exam date %q: expected YYYY-MM-DD", req.ExamDate),
		}
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	days := make([]time.Weekday, 0, len(req.PreferredDays))
	for _, d := range req.PreferredDays {
		days = append(days, time.Weekday(d))
	}

	return &domain.StudyPlanConfig{
		UserID:             req.UserID,
		CourseID:           req.CourseID,
		ExamDate:           examDate,
		StudyHoursPerWeek:  req.StudyHoursPerWeek,
		SelfRating:         domain.SelfRating(req.SelfRating),
		PreferredStudyDays: days,
		CreatedAt:          now,
	}, now, nil
}

// planErrorFrom maps scheduler sentinels onto the typed contract errors.
func planErrorFrom(err error) error {
	switch {
	case errors.Is(err, scheduler.ErrExamDatePast):
		return &contract.PlanError{Code: contract.PlanErrExamDatePast, Message: err.Error()}
	case errors.Is(err, scheduler.ErrNoModules):
		return &contract.PlanError{Code: contract.PlanErrNoModules, Message: err.Error()}
	default:
		return &contract.PlanError{Code: contract.PlanErrInternal, Message: err.Error()}
	}
}
