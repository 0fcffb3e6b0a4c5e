package scheduler

import (
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// mockExamBlocks is the fixed cost of a full-length mock exam (2 hours),
// independent of the exam's question count.
const mockExamBlocks = 4

// Phase3Input parameterizes the Practice generator.
type Phase3Input struct {
	MockExams     []domain.MockExam
	Week1Start    time.Time
	ExamDate      time.Time
	TotalWeeks    int
	BlocksPerWeek int
	Phase1EndWeek int
	PreferredDays []time.Weekday
}

// GeneratePhase3 places named mock exams at structural anchor points and
// fills the remaining weekly practice budget with anonymous question-bank
// quiz sessions.
func GeneratePhase3(in Phase3Input) []domain.StudyBlock {
	startWeek := in.Phase1EndWeek + 1
	if startWeek < 1 {
		startWeek = 1
	}
	if startWeek > in.TotalWeeks {
		startWeek = in.TotalWeeks
	}

	mockWeeks := placeMockWeeks(len(in.MockExams), startWeek, in.TotalWeeks)
	mocksInWeek := make(map[int]int, len(mockWeeks))
	for _, w := range mockWeeks {
		mocksInWeek[w]++
	}

	var blocks []domain.StudyBlock
	ord := 0
	for i, week := range mockWeeks {
		date, ok := PreferredDateInWeek(in.Week1Start, week, in.PreferredDays, 0, in.ExamDate)
		if !ok {
			date = DateOf(in.ExamDate)
		}
		ord++
		blocks = append(blocks, domain.StudyBlock{
			Date:            date,
			TaskType:        domain.TaskPractice,
			ContentKind:     domain.KindMockExam,
			TargetQuizID:    in.MockExams[i].ID,
			EstimatedBlocks: mockExamBlocks,
			Order:           ord,
		})
	}

	for week := startWeek; week <= in.TotalWeeks; week++ {
		fill := in.BlocksPerWeek - mockExamBlocks*mocksInWeek[week]
		for s := 0; s < fill; s++ {
			date, ok := PreferredDateInWeek(in.Week1Start, week, in.PreferredDays, s+1, in.ExamDate)
			if !ok {
				continue
			}
			ord++
			blocks = append(blocks, domain.StudyBlock{
				Date:            date,
				TaskType:        domain.TaskPractice,
				ContentKind:     domain.KindQuizSession,
				EstimatedBlocks: 1,
				Order:           ord,
			})
		}
	}
	return blocks
}

// placeMockWeeks assigns each mock exam a week number. The first mock lands
// in the first week after Phase 1 ends, the last one week before the exam,
// and the rest are spread at even spacing between those anchors.
func placeMockWeeks(count, startWeek, totalWeeks int) []int {
	if count == 0 {
		return nil
	}

	lastWeek := totalWeeks - 1
	if lastWeek < startWeek {
		lastWeek = startWeek
	}

	if count == 1 {
		// A lone mock serves as the final dress rehearsal.
		return []int{lastWeek}
	}

	weeks := make([]int, count)
	weeks[0] = startWeek
	weeks[count-1] = lastWeek

	remaining := count - 2
	if remaining > 0 {
		spacing := (lastWeek - startWeek) / (remaining + 1)
		if spacing < 1 {
			spacing = 1
		}
		for i := 1; i <= remaining; i++ {
			w := startWeek + spacing*i
			if w > lastWeek {
				w = lastWeek
			}
			weeks[i] = w
		}
	}
	return weeks
}
