package scheduler

import (
	"sort"
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// Review's weekly share of the block budget while Learn is still running.
// Once Phase 1 ends, Practice takes everything Review does not use.
const (
	reviewShareDivisor = 5
	reviewWeeklyFloor  = 2
)

// GenerateInput bundles everything a full generation run needs. All data is
// already in memory; generation itself is a single synchronous computation.
type GenerateInput struct {
	Config    domain.StudyPlanConfig
	Inventory domain.CourseInventory
	Now       time.Time
}

// GenerateOutput is the full generated plan before persistence.
type GenerateOutput struct {
	Validation    ValidationResult
	Blocks        []domain.StudyBlock
	TotalWeeks    int
	Phase1EndWeek int
}

// Phase1EndWeek returns the last week of the Learn phase for a plan
// spanning totalWeeks weeks, or 0 when the runway is too short to run
// Learn at all. The final two weeks are always reserved for Review and
// Practice. The weekly aggregator uses the same boundary when deciding
// which LEARN entries have gone stale.
func Phase1EndWeek(totalWeeks int) int {
	if totalWeeks < minWeeksForPhase1 {
		return 0
	}
	end := totalWeeks - 2
	if end < 1 {
		end = 1
	}
	return end
}

// GeneratePlan validates the configuration and runs the three phase
// generators, returning the merged, date-sorted block list with final
// sequential order values. Only hard configuration errors abort; every
// feasibility shortfall travels back as a warning on the validation result.
func GeneratePlan(in GenerateInput) (*GenerateOutput, error) {
	v := Validate(in.Config, in.Inventory, in.Now)
	if v.Err != nil {
		return nil, v.Err
	}

	week1Start := in.Config.CreatedAt
	if week1Start.IsZero() {
		week1Start = in.Now
	}

	totalWeeks := v.WeeksUntilExam
	blocksPerWeek := v.AdjustedHours * 2

	var reviewWeekly, practiceWeekly, phase1EndWeek int
	var blocks []domain.StudyBlock

	if v.OmitPhase1 {
		phase1EndWeek = 0
		reviewWeekly = blocksPerWeek / 2
		practiceWeekly = blocksPerWeek - reviewWeekly
	} else {
		phase1Weeks := Phase1EndWeek(totalWeeks)
		phase1EndWeek = phase1Weeks

		blocks = append(blocks, GeneratePhase1(Phase1Input{
			Inventory:     in.Inventory,
			Week1Start:    week1Start,
			Phase1Weeks:   phase1Weeks,
			PreferredDays: in.Config.PreferredStudyDays,
			ExamDate:      in.Config.ExamDate,
			VideosEnabled: in.Inventory.VideosEnabled,
		})...)

		reviewWeekly = blocksPerWeek / reviewShareDivisor
		if reviewWeekly < reviewWeeklyFloor {
			reviewWeekly = reviewWeeklyFloor
		}
		if reviewWeekly > blocksPerWeek {
			reviewWeekly = blocksPerWeek
		}
		practiceWeekly = blocksPerWeek - reviewWeekly
	}

	blocks = append(blocks, GeneratePhase2(Phase2Input{
		Week1Start:    week1Start,
		ExamDate:      in.Config.ExamDate,
		TotalWeeks:    totalWeeks,
		BlocksPerWeek: reviewWeekly,
		PreferredDays: in.Config.PreferredStudyDays,
	})...)

	blocks = append(blocks, GeneratePhase3(Phase3Input{
		MockExams:     in.Inventory.MockExams,
		Week1Start:    week1Start,
		ExamDate:      in.Config.ExamDate,
		TotalWeeks:    totalWeeks,
		BlocksPerWeek: practiceWeekly,
		Phase1EndWeek: phase1EndWeek,
		PreferredDays: in.Config.PreferredStudyDays,
	})...)

	sortBlocks(blocks)
	for i := range blocks {
		blocks[i].Order = i + 1
	}

	return &GenerateOutput{
		Validation:    v,
		Blocks:        blocks,
		TotalWeeks:    totalWeeks,
		Phase1EndWeek: phase1EndWeek,
	}, nil
}

// sortBlocks orders the merged plan deterministically: by date, then by the
// fixed Learn sequence, then by each generator's own emission order.
func sortBlocks(blocks []domain.StudyBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ModuleID == b.ModuleID && a.ModuleID != "" {
			ra, rb := a.ContentKind.SequenceRank(), b.ContentKind.SequenceRank()
			if ra != rb {
				return ra < rb
			}
		}
		return a.Order < b.Order
	})
}
