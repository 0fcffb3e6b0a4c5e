package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// Hard configuration errors. Anything else surfaces as a warning on the
// result and never stops generation.
var (
	ErrExamDatePast = errors.New("exam date must be in the future")
	ErrNoModules    = errors.New("course has no modules to schedule")
)

// Weeks-until-exam thresholds.
const (
	// minWeeksForPhase1 is the runway below which there is no room to
	// sequence Learn before Review/Practice; the plan collapses to a 50/50
	// Review/Practice split.
	minWeeksForPhase1 = 4
	// advisoryMaxWeeks is the horizon beyond which a tighter window is
	// suggested, without blocking generation.
	advisoryMaxWeeks = 15
)

// ValidationResult is the outcome of the pure pre-generation check.
type ValidationResult struct {
	Valid          bool
	OmitPhase1     bool
	WeeksUntilExam int
	// AdjustedHours is the weekly hour budget after the per-rating floor is
	// applied. Equals the configured value when no clamp was needed.
	AdjustedHours int
	Warnings      []string
	Err           error
}

// Validate decides whether a configuration is schedulable at all and
// computes the adjustments generation will run with. It has no side
// effects, so callers can present warnings before committing to a run.
func Validate(cfg domain.StudyPlanConfig, inv domain.CourseInventory, now time.Time) ValidationResult {
	res := ValidationResult{AdjustedHours: cfg.StudyHoursPerWeek}

	if !DateOf(cfg.ExamDate).After(DateOf(now)) {
		res.Err = ErrExamDatePast
		return res
	}
	if len(inv.Modules) == 0 {
		res.Err = ErrNoModules
		return res
	}

	createdAt := cfg.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	res.WeeksUntilExam = WeeksUntilExam(createdAt, cfg.ExamDate)

	if res.WeeksUntilExam < minWeeksForPhase1 {
		res.OmitPhase1 = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"only %d week(s) until the exam: skipping the Learn phase and splitting time 50/50 between Review and Practice",
			res.WeeksUntilExam))
	}

	if floor := cfg.SelfRating.MinWeeklyHours(); cfg.StudyHoursPerWeek < floor {
		res.AdjustedHours = floor
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d hours/week is below the minimum for a %s student: raised to %d hours/week",
			cfg.StudyHoursPerWeek, cfg.SelfRating, floor))
	}

	// Content-volume feasibility. The Learn phase never drops modules, so
	// when the course's minimum Learn volume exceeds the window's block
	// capacity the plan is still generated, with the shortfall surfaced.
	if !res.OmitPhase1 {
		learnWeeks := Phase1EndWeek(res.WeeksUntilExam)
		capacity := res.AdjustedHours * 2 * learnWeeks
		if need := inv.MinimumStudyBlocks(); need > capacity {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%d module(s) need at least %d learn blocks but only %d fit in the %d-week learn window: learn tasks will run past it",
				len(inv.Modules), need, capacity, learnWeeks))
		}
	}

	if res.WeeksUntilExam > advisoryMaxWeeks {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d weeks until the exam is a long runway: an 8-12 week window keeps material fresher",
			res.WeeksUntilExam))
	}

	res.Valid = true
	return res
}
