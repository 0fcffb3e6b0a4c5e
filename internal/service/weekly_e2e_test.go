package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/domain"
	"github.com/mathieuvidal/examplan/internal/testutil"
)

func TestWeeklyPlan_EndToEnd(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	testutil.SeedCourse(t, env.db, "c-1",
		testutil.WithUniformModules(6, 1, 1, 1, 0, 0),
		testutil.WithMockExams(2))
	_, err := env.plans.Generate(ctx, generateReq("c-1"))
	require.NoError(t, err)

	resp, err := env.weekly.WeeklyPlan(ctx, contract.WeeklyPlanRequest{UserID: "u-1", CourseID: "c-1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Weeks)

	// Weeks come back in ascending order with their date bounds set.
	for i, w := range resp.Weeks {
		assert.Positive(t, w.Number)
		assert.False(t, w.EndDate.Before(w.StartDate))
		assert.NotEmpty(t, w.Tasks)
		if i > 0 {
			assert.Greater(t, w.Number, resp.Weeks[i-1].Number)
		}
	}

	// The first week is Learn territory, the final weeks pure practice.
	first := resp.Weeks[0]
	assert.Equal(t, 1, first.Number)
	hasLearn := false
	for _, task := range first.Tasks {
		if task.Kind == domain.WeeklyTaskLearn {
			hasLearn = true
			assert.Contains(t, task.Label, "Module")
		}
	}
	assert.True(t, hasLearn)

	// The mock exams surface under their own titles.
	var mockLabels []string
	for _, w := range resp.Weeks {
		for _, task := range w.Tasks {
			if task.ContentKind == domain.KindMockExam {
				mockLabels = append(mockLabels, task.Label)
			}
		}
	}
	assert.ElementsMatch(t, []string{"Mock exam 1", "Mock exam 2"}, mockLabels)
}

func TestWeeklyPlan_ReflectsCompletedEntries(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	testutil.SeedCourse(t, env.db, "c-1", testutil.WithUniformModules(4, 1, 1, 1, 0, 0))
	_, err := env.plans.Generate(ctx, generateReq("c-1"))
	require.NoError(t, err)

	entries, err := env.planRepo.ListByUserCourse(ctx, "u-1", "c-1")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.NoError(t, env.entries.SetStatus(ctx, entries[0].ID, domain.StatusCompleted))

	resp, err := env.weekly.WeeklyPlan(ctx, contract.WeeklyPlanRequest{UserID: "u-1", CourseID: "c-1"})
	require.NoError(t, err)

	done := 0
	for _, w := range resp.Weeks {
		done += w.DoneCount
	}
	assert.Positive(t, done, "completion must show up in the weekly view")
}

func TestWeeklyPlan_NoPlanExists(t *testing.T) {
	env := setupEnv(t)

	_, err := env.weekly.WeeklyPlan(context.Background(),
		contract.WeeklyPlanRequest{UserID: "u-1", CourseID: "c-1"})

	var perr *contract.PlanError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.PlanErrNotFound, perr.Code)
}
