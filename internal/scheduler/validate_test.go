package scheduler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieuvidal/examplan/internal/domain"
)

func baseConfig(examDate time.Time) domain.StudyPlanConfig {
	return domain.StudyPlanConfig{
		UserID:            "u-1",
		CourseID:          "c-1",
		ExamDate:          examDate,
		StudyHoursPerWeek: 10,
		SelfRating:        domain.RatingNovice,
		CreatedAt:         monday,
	}
}

func TestValidate_ExamDatePast(t *testing.T) {
	cfg := baseConfig(monday.AddDate(0, 0, -1))
	res := Validate(cfg, uniformInventory(5, 1, 1, 1), monday)
	assert.False(t, res.Valid)
	assert.ErrorIs(t, res.Err, ErrExamDatePast)
}

func TestValidate_ExamDateToday(t *testing.T) {
	// Same day counts as past: there is nothing left to schedule.
	cfg := baseConfig(monday)
	res := Validate(cfg, uniformInventory(5, 1, 1, 1), monday)
	assert.ErrorIs(t, res.Err, ErrExamDatePast)
}

func TestValidate_NoModules(t *testing.T) {
	cfg := baseConfig(monday.AddDate(0, 0, 60))
	res := Validate(cfg, domain.CourseInventory{CourseID: "c-1"}, monday)
	assert.False(t, res.Valid)
	assert.ErrorIs(t, res.Err, ErrNoModules)
}

func TestValidate_HappyPath(t *testing.T) {
	cfg := baseConfig(time.Date(2026, 5, 22, 0, 0, 0, 0, time.UTC)) // 12 weeks out
	res := Validate(cfg, uniformInventory(10, 1, 1, 1), monday)

	require.NoError(t, res.Err)
	assert.True(t, res.Valid)
	assert.False(t, res.OmitPhase1)
	assert.Equal(t, 12, res.WeeksUntilExam)
	assert.Equal(t, 10, res.AdjustedHours)
	assert.Empty(t, res.Warnings)
}

func TestValidate_HoursFloor(t *testing.T) {
	cases := []struct {
		name    string
		rating  domain.SelfRating
		hours   int
		want    int
		clamped bool
	}{
		{"novice below floor", domain.RatingNovice, 5, 8, true},
		{"novice at floor", domain.RatingNovice, 8, 8, false},
		{"intermediate below floor", domain.RatingIntermediate, 6, 7, true},
		{"intermediate at floor", domain.RatingIntermediate, 7, 7, false},
		{"retaker below floor", domain.RatingRetaker, 4, 8, true},
		{"above floor untouched", domain.RatingNovice, 12, 12, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig(time.Date(2026, 5, 22, 0, 0, 0, 0, time.UTC))
			cfg.SelfRating = tc.rating
			cfg.StudyHoursPerWeek = tc.hours

			res := Validate(cfg, uniformInventory(10, 1, 1, 1), monday)
			require.NoError(t, res.Err)
			assert.Equal(t, tc.want, res.AdjustedHours)

			if tc.clamped {
				require.Len(t, res.Warnings, 1)
				// The warning must name the hour count actually applied.
				assert.Contains(t, res.Warnings[0], "8")
				if tc.rating == domain.RatingIntermediate {
					assert.Contains(t, res.Warnings[0], "7")
				}
			} else {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}

func TestValidate_ShortRunwayOmitsPhase1(t *testing.T) {
	cfg := baseConfig(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)) // 3 weeks out
	res := Validate(cfg, uniformInventory(5, 1, 1, 1), monday)

	require.NoError(t, res.Err)
	assert.True(t, res.Valid)
	assert.True(t, res.OmitPhase1)
	assert.Equal(t, 3, res.WeeksUntilExam)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, strings.ToLower(res.Warnings[0]), "learn")
}

func TestValidate_LongRunwayAdvisory(t *testing.T) {
	cfg := baseConfig(time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)) // 19 weeks out
	res := Validate(cfg, uniformInventory(5, 1, 1, 1), monday)

	require.NoError(t, res.Err)
	assert.True(t, res.Valid)
	assert.False(t, res.OmitPhase1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "19 weeks")
}

func TestValidate_ContentVolumeWarning(t *testing.T) {
	// 40 modules demand 160 learn blocks at minimum, but a 6-week runway
	// leaves a 4-week learn window of 8h*2*4 = 64 blocks.
	cfg := baseConfig(time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	cfg.StudyHoursPerWeek = 8
	res := Validate(cfg, uniformInventory(40, 3, 2, 2), monday)

	require.NoError(t, res.Err)
	assert.True(t, res.Valid)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, strings.ToLower(res.Warnings[0]), "learn")
	assert.Contains(t, res.Warnings[0], "160")
	assert.Contains(t, res.Warnings[0], "64")
}

func TestValidate_ContentVolumeFits(t *testing.T) {
	// 5 modules need 20 blocks against the same 64-block window.
	cfg := baseConfig(time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	cfg.StudyHoursPerWeek = 8
	res := Validate(cfg, uniformInventory(5, 1, 1, 1), monday)

	require.NoError(t, res.Err)
	assert.Empty(t, res.Warnings)
}

func TestValidate_ContentVolumeSkippedWithoutLearnPhase(t *testing.T) {
	// Below the 4-week runway Learn is dropped entirely, so only the
	// short-runway warning fires no matter how heavy the course is.
	cfg := baseConfig(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))
	res := Validate(cfg, uniformInventory(40, 3, 2, 2), monday)

	require.NoError(t, res.Err)
	assert.True(t, res.OmitPhase1)
	require.Len(t, res.Warnings, 1)
	assert.NotContains(t, res.Warnings[0], "160")
}
