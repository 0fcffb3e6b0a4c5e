package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieuvidal/examplan/internal/db"
	"github.com/mathieuvidal/examplan/internal/domain"
	"github.com/mathieuvidal/examplan/internal/testutil"
)

var planNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testConfig() *domain.StudyPlanConfig {
	return &domain.StudyPlanConfig{
		UserID:             "u-1",
		CourseID:           "c-1",
		ExamDate:           time.Date(2026, 5, 22, 0, 0, 0, 0, time.UTC),
		StudyHoursPerWeek:  10,
		SelfRating:         domain.RatingNovice,
		PreferredStudyDays: []time.Weekday{time.Tuesday, time.Saturday},
		CreatedAt:          planNow,
	}
}

func testEntries(n int) []*domain.DailyPlanEntry {
	entries := make([]*domain.DailyPlanEntry, n)
	for i := range entries {
		entries[i] = domain.NewDailyPlanEntry(
			fmt.Sprintf("e-%03d", i+1), "u-1", "c-1",
			domain.StudyBlock{
				Date:            planNow.AddDate(0, 0, i),
				TaskType:        domain.TaskLearn,
				ContentKind:     domain.KindQuickRead,
				ModuleID:        "c-1-m01",
				IsOffPlatform:   true,
				EstimatedBlocks: 1,
				Order:           i + 1,
			}, planNow)
	}
	return entries
}

func TestPlanRepo_SaveAndGetConfig(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1")
	require.NoError(t, repo.SaveConfig(ctx, testConfig()))

	cfg, err := repo.GetConfig(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", cfg.UserID)
	assert.Equal(t, "2026-05-22", cfg.ExamDate.Format("2006-01-02"))
	assert.Equal(t, 10, cfg.StudyHoursPerWeek)
	assert.Equal(t, domain.RatingNovice, cfg.SelfRating)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Saturday}, cfg.PreferredStudyDays)
}

func TestPlanRepo_SaveConfig_UpsertsOnRegeneration(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1")
	require.NoError(t, repo.SaveConfig(ctx, testConfig()))

	changed := testConfig()
	changed.StudyHoursPerWeek = 14
	changed.SelfRating = domain.RatingRetaker
	require.NoError(t, repo.SaveConfig(ctx, changed))

	cfg, err := repo.GetConfig(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.StudyHoursPerWeek)
	assert.Equal(t, domain.RatingRetaker, cfg.SelfRating)
}

func TestPlanRepo_GetConfig_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	_, err := repo.GetConfig(context.Background(), "u-1", "c-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_ReplaceAll_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1", testutil.WithUniformModules(1, 1, 1, 1, 0, 0))
	require.NoError(t, repo.ReplaceAll(ctx, "u-1", "c-1", testEntries(3)))

	got, err := repo.ListByUserCourse(ctx, "u-1", "c-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("e-%03d", i+1), e.ID)
		assert.Equal(t, domain.TaskLearn, e.TaskType)
		assert.Equal(t, "c-1-m01", e.ModuleID)
		assert.True(t, e.IsOffPlatform)
		assert.Equal(t, domain.StatusPending, e.Status)
	}
}

func TestPlanRepo_ReplaceAll_DiscardsPreviousPlan(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1", testutil.WithUniformModules(1, 1, 1, 1, 0, 0))
	require.NoError(t, repo.ReplaceAll(ctx, "u-1", "c-1", testEntries(5)))
	require.NoError(t, repo.ReplaceAll(ctx, "u-1", "c-1", testEntries(2)))

	got, err := repo.ListByUserCourse(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Len(t, got, 2, "old entries must not survive a replacement")
}

func TestPlanRepo_ReplaceAll_RollsBackOnMidwayFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1", testutil.WithUniformModules(1, 1, 1, 1, 0, 0))
	require.NoError(t, NewSQLitePlanRepo(database).ReplaceAll(ctx, "u-1", "c-1", testEntries(4)))

	// Fail on the third write: after the delete and one insert.
	uow := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    errors.New("disk full"),
	}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLitePlanRepo(tx).ReplaceAll(ctx, "u-1", "c-1", testEntries(6))
	})
	require.Error(t, err)

	// The original four entries are intact.
	got, err := NewSQLitePlanRepo(database).ListByUserCourse(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestPlanRepo_GetEntryAndUpdateStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1", testutil.WithUniformModules(1, 1, 1, 1, 0, 0))
	require.NoError(t, repo.ReplaceAll(ctx, "u-1", "c-1", testEntries(1)))

	later := planNow.Add(2 * time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, "e-001", domain.StatusCompleted, later))

	e, err := repo.GetEntry(ctx, "e-001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, e.Status)
	assert.True(t, e.UpdatedAt.Equal(later))
}

func TestPlanRepo_UpdateStatus_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusCompleted, planNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_GetEntry_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	_, err := repo.GetEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_RejectsUnknownContentKind(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	testutil.SeedCourse(t, database, "c-1")

	// content_kind has no schema constraint, so a row written outside the
	// repository can carry an arbitrary value.
	_, err := database.Exec(
		`INSERT INTO plan_entries (id, user_id, course_id, date, task_type,
		 content_kind, estimated_blocks, sort_order, created_at, updated_at)
		 VALUES ('e-bad', 'u-1', 'c-1', '2026-03-02', 'LEARN', 'osmosis', 1, 1, ?, ?)`,
		planNow.Format(time.RFC3339), planNow.Format(time.RFC3339))
	require.NoError(t, err)

	_, err = repo.GetEntry(ctx, "e-bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content kind")

	_, err = repo.ListByUserCourse(ctx, "u-1", "c-1")
	require.Error(t, err)
}
