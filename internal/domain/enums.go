package domain

type TaskType string

const (
	TaskLearn    TaskType = "LEARN"
	TaskReview   TaskType = "REVIEW"
	TaskPractice TaskType = "PRACTICE"
)

// ContentKind identifies what a study block actually asks the student to do.
type ContentKind string

const (
	// Phase 1 kinds, in fixed per-module sequence order.
	KindQuickRead ContentKind = "quick_read"
	KindVideo     ContentKind = "video"
	KindDeepRead  ContentKind = "deep_read"
	KindNotes     ContentKind = "notes"
	KindQuiz      ContentKind = "quiz"

	// Phase 2 kinds.
	KindFlashcardSession ContentKind = "flashcard_session"
	KindActivitySession  ContentKind = "activity_session"

	// Phase 3 kinds.
	KindMockExam    ContentKind = "mock_exam"
	KindQuizSession ContentKind = "quiz_session"
)

// ValidContentKinds is the canonical set of accepted content kind strings.
var ValidContentKinds = map[string]bool{
	"quick_read": true, "video": true, "deep_read": true,
	"notes": true, "quiz": true,
	"flashcard_session": true, "activity_session": true,
	"mock_exam": true, "quiz_session": true,
}

// SequenceRank returns the position of a Learn kind within the fixed
// per-module content sequence. Non-Learn kinds rank last.
func (k ContentKind) SequenceRank() int {
	switch k {
	case KindQuickRead:
		return 0
	case KindVideo:
		return 1
	case KindDeepRead:
		return 2
	case KindNotes:
		return 3
	case KindQuiz:
		return 4
	default:
		return 5
	}
}

type SelfRating string

const (
	RatingNovice       SelfRating = "NOVICE"
	RatingIntermediate SelfRating = "INTERMEDIATE"
	RatingRetaker      SelfRating = "RETAKER"
)

// MinWeeklyHours returns the weekly study-hours floor enforced for a rating.
func (r SelfRating) MinWeeklyHours() int {
	if r == RatingIntermediate {
		return 7
	}
	return 8
}

type EntryStatus string

const (
	StatusPending    EntryStatus = "PENDING"
	StatusInProgress EntryStatus = "IN_PROGRESS"
	StatusCompleted  EntryStatus = "COMPLETED"
)

type WeekPhase string

const (
	PhaseLearn    WeekPhase = "LEARN"
	PhaseReview   WeekPhase = "REVIEW"
	PhasePractice WeekPhase = "PRACTICE"
	PhaseMixed    WeekPhase = "MIXED"
)

type ReviewDifficulty string

const (
	DifficultyEasy   ReviewDifficulty = "EASY"
	DifficultyMedium ReviewDifficulty = "MEDIUM"
	DifficultyHard   ReviewDifficulty = "HARD"
)

type ReviewItemKind string

const (
	ItemFlashcard ReviewItemKind = "flashcard"
	ItemActivity  ReviewItemKind = "activity"
)
