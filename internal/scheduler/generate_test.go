package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieuvidal/examplan/internal/domain"
)

func standardInput() GenerateInput {
	inv := uniformInventory(10, 1, 1, 1)
	inv.MockExams = []domain.MockExam{
		{ID: "mock-1", Title: "Mock exam 1"},
		{ID: "mock-2", Title: "Mock exam 2"},
	}
	return GenerateInput{
		Config: domain.StudyPlanConfig{
			UserID:            "u-1",
			CourseID:          "c-1",
			ExamDate:          time.Date(2026, 5, 22, 0, 0, 0, 0, time.UTC), // 12 weeks
			StudyHoursPerWeek: 10,
			SelfRating:        domain.RatingNovice,
			CreatedAt:         monday,
		},
		Inventory: inv,
		Now:       monday,
	}
}

func TestGeneratePlan_StandardTwelveWeeks(t *testing.T) {
	out, err := GeneratePlan(standardInput())
	require.NoError(t, err)

	assert.Equal(t, 12, out.TotalWeeks)
	assert.Equal(t, 10, out.Phase1EndWeek)
	assert.True(t, out.Validation.Valid)
	assert.False(t, out.Validation.OmitPhase1)

	learnModules := make(map[string]bool)
	mockWeeks := make(map[int]int)
	var firstReviewWeek int
	for _, b := range out.Blocks {
		w := WeekNumberOf(monday, b.Date)
		switch b.TaskType {
		case domain.TaskLearn:
			learnModules[b.ModuleID] = true
			assert.LessOrEqual(t, w, 10, "learn block leaked past phase 1")
		case domain.TaskReview:
			if firstReviewWeek == 0 || w < firstReviewWeek {
				firstReviewWeek = w
			}
		case domain.TaskPractice:
			if b.ContentKind == domain.KindMockExam {
				mockWeeks[w]++
			}
			assert.GreaterOrEqual(t, w, 11, "practice block inside phase 1")
		}
	}

	assert.Len(t, learnModules, 10, "every module must be learned")
	assert.Equal(t, 2, mockWeeks[11], "mocks anchor in week 11")
	assert.Equal(t, 2, firstReviewWeek, "review waits for week 2 on a long runway")
}

func TestGeneratePlan_BlocksSortedAndSequenced(t *testing.T) {
	out, err := GeneratePlan(standardInput())
	require.NoError(t, err)
	require.NotEmpty(t, out.Blocks)

	lastRank := make(map[string]int)
	for i, b := range out.Blocks {
		assert.Equal(t, i+1, b.Order, "orders must be sequential from 1")
		if i > 0 {
			assert.False(t, b.Date.Before(out.Blocks[i-1].Date), "dates must be non-decreasing")
		}
		// Within a module the fixed learn sequence never runs backwards.
		if b.TaskType == domain.TaskLearn {
			rank := b.ContentKind.SequenceRank()
			if prev, ok := lastRank[b.ModuleID]; ok {
				assert.GreaterOrEqual(t, rank, prev, "module %s sequence reversed at %d", b.ModuleID, i)
			}
			lastRank[b.ModuleID] = rank
		}
	}
}

func TestGeneratePlan_ShortTimelineSplitsFiftyFifty(t *testing.T) {
	in := standardInput()
	in.Config.ExamDate = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC) // 3 weeks
	in.Inventory.MockExams = nil

	out, err := GeneratePlan(in)
	require.NoError(t, err)
	assert.True(t, out.Validation.OmitPhase1)
	assert.Equal(t, 0, out.Phase1EndWeek)

	counts := make(map[domain.TaskType]int)
	for _, b := range out.Blocks {
		counts[b.TaskType]++
		assert.False(t, b.Date.After(in.Config.ExamDate))
	}
	assert.Zero(t, counts[domain.TaskLearn], "no learn blocks when phase 1 is omitted")
	assert.Positive(t, counts[domain.TaskReview])
	assert.Equal(t, counts[domain.TaskReview], counts[domain.TaskPractice],
		"the remaining time splits evenly between review and practice")
}

func TestGeneratePlan_AdjustedHoursDriveBudget(t *testing.T) {
	in := standardInput()
	in.Config.StudyHoursPerWeek = 5 // clamped to the novice floor of 8

	out, err := GeneratePlan(in)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Validation.AdjustedHours)
	require.NotEmpty(t, out.Validation.Warnings)

	// 16 blocks/week: review gets 16/5 = 3, practice the remaining 13.
	reviewPerWeek := make(map[int]int)
	for _, b := range out.Blocks {
		if b.TaskType == domain.TaskReview {
			reviewPerWeek[WeekNumberOf(monday, b.Date)]++
		}
	}
	assert.Equal(t, 3, reviewPerWeek[5])
}

func TestGeneratePlan_HardErrors(t *testing.T) {
	in := standardInput()
	in.Config.ExamDate = monday.AddDate(0, 0, -1)
	_, err := GeneratePlan(in)
	assert.ErrorIs(t, err, ErrExamDatePast)

	in = standardInput()
	in.Inventory.Modules = nil
	_, err = GeneratePlan(in)
	assert.ErrorIs(t, err, ErrNoModules)
}

func TestPhase1EndWeek(t *testing.T) {
	cases := []struct {
		totalWeeks int
		want       int
	}{
		{1, 0},
		{3, 0},
		{4, 2},
		{6, 4},
		{12, 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Phase1EndWeek(tc.totalWeeks), "totalWeeks=%d", tc.totalWeeks)
	}
}

func TestGeneratePlan_WarnsWhenContentOutweighsBudget(t *testing.T) {
	in := standardInput()
	in.Inventory = uniformInventory(40, 3, 2, 2)
	in.Config.ExamDate = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC) // 6 weeks
	in.Config.StudyHoursPerWeek = 8

	out, err := GeneratePlan(in)
	require.NoError(t, err)
	assert.True(t, out.Validation.Valid)
	require.NotEmpty(t, out.Validation.Warnings)
	assert.Contains(t, out.Validation.Warnings[0], "learn")
}
