package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/repository"
	"github.com/mathieuvidal/examplan/internal/testutil"
)

// planStart is a Monday, so test plans get a full first week.
var planStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *sql.DB
	plans    PlanService
	weekly   WeeklyService
	review   ReviewService
	entries  EntryService
	content  repository.ContentRepo
	planRepo repository.PlanRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	content := repository.NewSQLiteContentRepo(database)
	progress := repository.NewSQLiteProgressRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	uow := testutil.NewTestUoW(database)

	return &testEnv{
		db:       database,
		plans:    NewPlanService(content, planRepo, uow),
		weekly:   NewWeeklyService(content, planRepo),
		review:   NewReviewService(content, progress),
		entries:  NewEntryService(planRepo),
		content:  content,
		planRepo: planRepo,
	}
}

// generateReq is a valid 12-week request against the given course.
func generateReq(courseID string) contract.GeneratePlanRequest {
	now := planStart
	return contract.GeneratePlanRequest{
		UserID:            "u-1",
		CourseID:          courseID,
		ExamDate:          "2026-05-22",
		StudyHoursPerWeek: 10,
		SelfRating:        "NOVICE",
		Now:               &now,
	}
}
