package repository

import (
	"context"
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// ContentRepo is the read-only content inventory source: what a course
// currently publishes, per module. The scheduler never writes through it.
type ContentRepo interface {
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	ListModuleInventories(ctx context.Context, courseID string) ([]domain.ModuleInventory, error)
	ListMockExams(ctx context.Context, courseID string) ([]domain.MockExam, error)
	// ListFlashcardIDsByModule returns each module's flashcard IDs in their
	// original order, keyed by module ID. Symmetric for activities.
	ListFlashcardIDsByModule(ctx context.Context, courseID string) (map[string][]string, error)
	ListActivityIDsByModule(ctx context.Context, courseID string) (map[string][]string, error)
}

// ProgressRepo is the read-only progress source: what the student has
// actually learned, attempted, and rated.
type ProgressRepo interface {
	ListModuleProgress(ctx context.Context, userID, courseID string) ([]domain.ModuleProgress, error)
	ListQuizAttempts(ctx context.Context, userID, courseID string) ([]domain.QuizAttempt, error)
	ListReviewRatings(ctx context.Context, userID, courseID string, kind domain.ReviewItemKind) ([]domain.ReviewRating, error)
}

// PlanRepo is the persistence sink for generated plans and the status
// source the weekly aggregator reads back. ReplaceAll must run inside a
// transaction (construct the repo from a UnitOfWork's DBTX) so a
// regeneration replaces the old plan wholesale or not at all.
type PlanRepo interface {
	SaveConfig(ctx context.Context, cfg *domain.StudyPlanConfig) error
	GetConfig(ctx context.Context, userID, courseID string) (*domain.StudyPlanConfig, error)
	ReplaceAll(ctx context.Context, userID, courseID string, entries []*domain.DailyPlanEntry) error
	ListByUserCourse(ctx context.Context, userID, courseID string) ([]*domain.DailyPlanEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.DailyPlanEntry, error)
	UpdateStatus(ctx context.Context, id string, status domain.EntryStatus, now time.Time) error
}
