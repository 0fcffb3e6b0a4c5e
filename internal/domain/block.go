package domain

import "time"

// StudyBlock is one atomic scheduled unit produced by the phase generators.
// It is not yet persisted; the service layer turns it into a DailyPlanEntry.
type StudyBlock struct {
	Date        time.Time
	TaskType    TaskType
	ContentKind ContentKind

	// Optional targets. ModuleID is set on every Learn block; TargetQuizID
	// only on named mock-exam blocks.
	ModuleID     string
	TargetQuizID string

	// IsOffPlatform marks externally-done work (quick read, deep read) that
	// has no backing content item but must still be checkable.
	IsOffPlatform bool

	// EstimatedBlocks counts 30-minute units: 1 for quiz/notes/quick read,
	// 2 for a video, 3 for a deep read, 4 for a mock exam.
	EstimatedBlocks int

	// Order breaks ties between blocks sharing the same date.
	Order int
}
