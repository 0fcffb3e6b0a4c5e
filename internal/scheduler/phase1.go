package scheduler

import (
	"sort"
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// Block sizes for the fixed Phase-1 content sequence, in 30-minute units.
const (
	quickReadBlocks = 1
	videoBlocks     = 2
	deepReadBlocks  = 3
	notesBlocks     = 1
	quizBlocks      = 1
)

// Phase1Input parameterizes the Learn generator.
type Phase1Input struct {
	Inventory     domain.CourseInventory
	Week1Start    time.Time
	Phase1Weeks   int
	PreferredDays []time.Weekday
	ExamDate      time.Time
	VideosEnabled bool
}

// GeneratePhase1 schedules every module's fixed Learn sequence: quick read,
// video(s), deep read, notes, quiz. Modules are packed into the available
// weeks at a ceiling-division pace, in order, never interleaved. Feasibility
// was judged upstream: if the pace pushes past the Phase-1 deadline the
// blocks are still emitted, only never past the exam date itself.
func GeneratePhase1(in Phase1Input) []domain.StudyBlock {
	modules := make([]domain.ModuleInventory, len(in.Inventory.Modules))
	copy(modules, in.Inventory.Modules)
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })

	weeks := in.Phase1Weeks
	if weeks < 1 {
		// Exam too close for a spread-out Learn phase: compress into the
		// single remaining week rather than fail.
		weeks = 1
	}
	perWeek := ModulesPerWeek(len(modules), weeks)

	var blocks []domain.StudyBlock
	ord := 0
	for i := range modules {
		m := &modules[i]
		week := i/perWeek + 1
		slot := i % perWeek

		date, ok := PreferredDateInWeek(in.Week1Start, week, in.PreferredDays, slot, in.ExamDate)
		if !ok {
			// Whole week lies past the exam. Every module must still appear
			// in the plan, so fall back to the exam day itself.
			date = DateOf(in.ExamDate)
		}

		emit := func(kind domain.ContentKind, size int, offPlatform bool) {
			ord++
			blocks = append(blocks, domain.StudyBlock{
				Date:            date,
				TaskType:        domain.TaskLearn,
				ContentKind:     kind,
				ModuleID:        m.ID,
				IsOffPlatform:   offPlatform,
				EstimatedBlocks: size,
				Order:           ord,
			})
		}

		emit(domain.KindQuickRead, quickReadBlocks, true)
		if in.VideosEnabled {
			for v := 0; v < m.Videos; v++ {
				emit(domain.KindVideo, videoBlocks, false)
			}
		}
		emit(domain.KindDeepRead, deepReadBlocks, true)
		if m.Notes > 0 {
			for n := 0; n < m.Notes; n++ {
				emit(domain.KindNotes, notesBlocks, false)
			}
		} else {
			// Placeholder keeps module-level progress trackable.
			emit(domain.KindNotes, notesBlocks, false)
		}
		if m.Quizzes > 0 {
			for q := 0; q < m.Quizzes; q++ {
				emit(domain.KindQuiz, quizBlocks, false)
			}
		} else {
			emit(domain.KindQuiz, quizBlocks, false)
		}
	}
	return blocks
}
