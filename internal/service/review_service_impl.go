package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/domain"
	"github.com/mathieuvidal/examplan/internal/repository"
	"github.com/mathieuvidal/examplan/internal/scheduler"
)

type reviewService struct {
	content  repository.ContentRepo
	progress repository.ProgressRepo
	validate *validator.Validate
	observer OpObserver
}

// NewReviewService builds the consumption-time item resolver for review
// sessions. Generated session blocks carry no item IDs; which flashcards
// and activities are due depends on what the student has learned by the
// time the session is actually taken.
func NewReviewService(content repository.ContentRepo, progress repository.ProgressRepo, observers ...OpObserver) ReviewService {
	return &reviewService{
		content:  content,
		progress: progress,
		validate: validator.New(),
		observer: observerOrNoop(observers),
	}
}

func (s *reviewService) NextFlashcards(ctx context.Context, req contract.NextItemsRequest) (resp *contract.NextItemsResponse, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "review_next_flashcards", started, err, nil)
	}()
	return s.nextItems(ctx, req, domain.ItemFlashcard)
}

func (s *reviewService) NextActivities(ctx context.Context, req contract.NextItemsRequest) (resp *contract.NextItemsResponse, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "review_next_activities", started, err, nil)
	}()
	return s.nextItems(ctx, req, domain.ItemActivity)
}

func (s *reviewService) nextItems(ctx context.Context, req contract.NextItemsRequest, kind domain.ReviewItemKind) (*contract.NextItemsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &contract.PlanError{Code: contract.PlanErrValidation, Message: err.Error()}
	}

	in, err := s.buildPrioritizeInput(ctx, req.UserID, req.CourseID, kind)
	if err != nil {
		return nil, err
	}

	var ordered []string
	if kind == domain.ItemFlashcard {
		ordered = scheduler.PrioritizeFlashcards(*in)
	} else {
		ordered = scheduler.PrioritizeActivities(*in)
	}

	if req.Limit > 0 && len(ordered) > req.Limit {
		ordered = ordered[:req.Limit]
	}
	return &contract.NextItemsResponse{ItemIDs: ordered}, nil
}

func (s *reviewService) buildPrioritizeInput(ctx context.Context, userID, courseID string, kind domain.ReviewItemKind) (*scheduler.PrioritizeInput, error) {
	modules, err := s.content.ListModuleInventories(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("loading module inventories: %w", err)
	}

	var itemsByModule map[string][]string
	if kind == domain.ItemFlashcard {
		itemsByModule, err = s.content.ListFlashcardIDsByModule(ctx, courseID)
	} else {
		itemsByModule, err = s.content.ListActivityIDsByModule(ctx, courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading review items: %w", err)
	}

	progress, err := s.progress.ListModuleProgress(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("loading module progress: %w", err)
	}
	ratings, err := s.progress.ListReviewRatings(ctx, userID, courseID, kind)
	if err != nil {
		return nil, fmt.Errorf("loading review ratings: %w", err)
	}

	learnedSet := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.Learned {
			learnedSet[p.ModuleID] = true
		}
	}

	in := &scheduler.PrioritizeInput{
		ItemsByModule: itemsByModule,
		HardItemIDs:   make(map[string]bool),
	}
	for _, m := range modules {
		in.ModuleOrder = append(in.ModuleOrder, m.ID)
		if learnedSet[m.ID] {
			in.LearnedModuleIDs = append(in.LearnedModuleIDs, m.ID)
		}
		in.AllItemIDs = append(in.AllItemIDs, itemsByModule[m.ID]...)
	}
	for _, r := range ratings {
		if r.Difficulty == domain.DifficultyHard {
			in.HardItemIDs[r.ItemID] = true
		}
	}

	if kind == domain.ItemActivity {
		attempts, err := s.progress.ListQuizAttempts(ctx, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("loading quiz attempts: %w", err)
		}
		in.FailedModuleIDs = failedModules(attempts)
	}
	return in, nil
}

// failedModules returns the modules whose most recent quiz attempt scored
// below the quiz's passing threshold.
func failedModules(attempts []domain.QuizAttempt) map[string]bool {
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].AttemptedAt.Before(attempts[j].AttemptedAt)
	})
	latest := make(map[string]domain.QuizAttempt, len(attempts))
	for _, a := range attempts {
		latest[a.ModuleID] = a
	}

	failed := make(map[string]bool)
	for moduleID, a := range latest {
		if !a.Passed() {
			failed[moduleID] = true
		}
	}
	return failed
}
