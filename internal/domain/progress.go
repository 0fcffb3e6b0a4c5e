package domain

import "time"

// ModuleProgress records whether a student has finished learning a module.
type ModuleProgress struct {
	UserID    string
	ModuleID  string
	Learned   bool
	LearnedAt *time.Time
}

// QuizAttempt is one graded quiz attempt, used by the prioritizer to detect
// failed module checkpoints.
type QuizAttempt struct {
	ID           string
	UserID       string
	QuizID       string
	ModuleID     string
	Score        float64
	PassingScore float64
	AttemptedAt  time.Time
}

// Passed reports whether the attempt met the quiz's passing threshold.
func (a *QuizAttempt) Passed() bool {
	return a.Score >= a.PassingScore
}

// ReviewRating is a student's self-assessed difficulty for a review item.
type ReviewRating struct {
	UserID     string
	ItemID     string
	ItemKind   ReviewItemKind
	Difficulty ReviewDifficulty
	RatedAt    time.Time
}
