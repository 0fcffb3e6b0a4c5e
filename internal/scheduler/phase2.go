package scheduler

import (
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// reviewDelayThreshold is the total-week count at and above which Review
// waits until week 2, keeping week 1 free for onboarding and first Learn
// modules.
const reviewDelayThreshold = 6

// Phase2Input parameterizes the Review generator.
type Phase2Input struct {
	Week1Start    time.Time
	ExamDate      time.Time
	TotalWeeks    int
	BlocksPerWeek int
	PreferredDays []time.Weekday
}

// SplitReviewBudget divides a weekly review block budget between flashcard
// and activity sessions: ceil(budget/2) flashcards, remainder activities.
// Any budget of two or more guarantees at least one of each, so neither
// content type starves under integer rounding.
func SplitReviewBudget(budget int) (flashcards, activities int) {
	if budget <= 0 {
		return 0, 0
	}
	flashcards = ceilDiv(budget, 2)
	activities = budget - flashcards
	return flashcards, activities
}

// GeneratePhase2 schedules recurring review sessions every week from the
// start week through the exam week inclusive. Sessions are slots only: the
// concrete flashcard/activity IDs are resolved by the prioritizer when the
// student actually sits the session. Sessions that cannot land on or before
// the exam date are dropped.
func GeneratePhase2(in Phase2Input) []domain.StudyBlock {
	startWeek := 1
	if in.TotalWeeks >= reviewDelayThreshold {
		startWeek = 2
	}

	var blocks []domain.StudyBlock
	ord := 0
	for week := startWeek; week <= in.TotalWeeks; week++ {
		flash, acts := SplitReviewBudget(in.BlocksPerWeek)

		emit := func(kind domain.ContentKind, idx int) {
			date, ok := PreferredDateInWeek(in.Week1Start, week, in.PreferredDays, idx, in.ExamDate)
			if !ok {
				return
			}
			ord++
			blocks = append(blocks, domain.StudyBlock{
				Date:            date,
				TaskType:        domain.TaskReview,
				ContentKind:     kind,
				EstimatedBlocks: 1,
				Order:           ord,
			})
		}

		for s := 0; s < flash; s++ {
			emit(domain.KindFlashcardSession, s)
		}
		for s := 0; s < acts; s++ {
			emit(domain.KindActivitySession, flash+s)
		}
	}
	return blocks
}
