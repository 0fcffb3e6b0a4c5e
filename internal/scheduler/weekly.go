package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/mathieuvidal/examplan/internal/domain"
)

// AggregateInput carries the persisted entries plus the content context
// needed to name tasks in the weekly view.
type AggregateInput struct {
	Entries    []*domain.DailyPlanEntry
	Modules    []domain.ModuleInventory
	MockExams  []domain.MockExam
	Week1Start time.Time
	// Phase1EndWeek, when positive, drops stale Learn entries bucketed past
	// it. Defensive cleanup for plans regenerated after Phase 1 shrank.
	Phase1EndWeek int
}

// AggregateWeeks regroups the flat dated entry list into per-week,
// per-phase task summaries. It is a pure projection over persisted state
// and produces identical output for identical input.
func AggregateWeeks(in AggregateInput) []domain.WeeklyPlanWeek {
	moduleByID := make(map[string]*domain.ModuleInventory, len(in.Modules))
	moduleOrder := make([]string, 0, len(in.Modules))
	for i := range in.Modules {
		moduleByID[in.Modules[i].ID] = &in.Modules[i]
		moduleOrder = append(moduleOrder, in.Modules[i].ID)
	}
	mockTitleByID := make(map[string]string, len(in.MockExams))
	for _, m := range in.MockExams {
		mockTitleByID[m.ID] = m.Title
	}

	byWeek := make(map[int][]*domain.DailyPlanEntry)
	for _, e := range in.Entries {
		week := WeekNumberOf(in.Week1Start, e.Date)
		if e.TaskType == domain.TaskLearn && in.Phase1EndWeek > 0 && week > in.Phase1EndWeek {
			continue
		}
		byWeek[week] = append(byWeek[week], e)
	}

	weekNums := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weekNums = append(weekNums, w)
	}
	sort.Ints(weekNums)

	weeks := make([]domain.WeeklyPlanWeek, 0, len(weekNums))
	for _, num := range weekNums {
		entries := byWeek[num]
		var tasks []domain.WeeklyPlanTask
		tasks = append(tasks, learnTasks(entries, moduleByID, moduleOrder)...)
		tasks = append(tasks, reviewTasks(entries)...)
		tasks = append(tasks, practiceTasks(entries, mockTitleByID)...)
		if len(tasks) == 0 {
			continue
		}

		start, end := WeekBounds(in.Week1Start, num)
		done := 0
		for _, t := range tasks {
			if t.Status == domain.StatusCompleted {
				done++
			}
		}
		weeks = append(weeks, domain.WeeklyPlanWeek{
			Number:    num,
			StartDate: start,
			EndDate:   end,
			Phase:     weekPhase(tasks),
			Tasks:     tasks,
			DoneCount: done,
			TaskCount: len(tasks),
		})
	}
	return weeks
}

// learnDisplayOrder fixes how a module's Learn tasks appear within a week.
var learnDisplayOrder = []struct {
	kind  domain.ContentKind
	label string
}{
	{domain.KindQuickRead, "Quick read"},
	{domain.KindVideo, "Video"},
	{domain.KindDeepRead, "Deep read"},
	{domain.KindNotes, "Notes"},
	{domain.KindQuiz, "Quiz"},
}

func learnTasks(entries []*domain.DailyPlanEntry, moduleByID map[string]*domain.ModuleInventory, moduleOrder []string) []domain.WeeklyPlanTask {
	type key struct {
		moduleID string
		kind     domain.ContentKind
	}
	grouped := make(map[key][]*domain.DailyPlanEntry)
	for _, e := range entries {
		if e.TaskType != domain.TaskLearn {
			continue
		}
		grouped[key{e.ModuleID, e.ContentKind}] = append(grouped[key{e.ModuleID, e.ContentKind}], e)
	}

	var tasks []domain.WeeklyPlanTask
	for _, moduleID := range moduleOrder {
		m := moduleByID[moduleID]
		for _, disp := range learnDisplayOrder {
			group := grouped[key{moduleID, disp.kind}]
			if len(group) == 0 {
				continue
			}
			if !learnTaskVisible(m, disp.kind, group) {
				continue
			}
			tasks = append(tasks, buildTask(
				fmt.Sprintf("%s - %s", disp.label, m.Title),
				domain.WeeklyTaskLearn, disp.kind, moduleID, group))
		}
	}
	return tasks
}

// learnTaskVisible applies the display rule: a task shows only if its
// module actually has that content type, or, for the off-platform reads,
// if an off-platform entry exists. Placeholder notes/quiz entries for
// modules without that content stay out of the weekly view.
func learnTaskVisible(m *domain.ModuleInventory, kind domain.ContentKind, group []*domain.DailyPlanEntry) bool {
	if m == nil {
		return false
	}
	switch kind {
	case domain.KindQuickRead, domain.KindDeepRead:
		for _, e := range group {
			if e.IsOffPlatform {
				return true
			}
		}
		return false
	case domain.KindVideo:
		return m.Videos > 0
	case domain.KindNotes:
		return m.Notes > 0
	case domain.KindQuiz:
		return m.Quizzes > 0
	default:
		return false
	}
}

// reviewTasks collapses a week's review entries into at most two aggregate
// tasks, one per session type, instead of listing each session.
func reviewTasks(entries []*domain.DailyPlanEntry) []domain.WeeklyPlanTask {
	var flash, acts []*domain.DailyPlanEntry
	for _, e := range entries {
		if e.TaskType != domain.TaskReview {
			continue
		}
		if e.ContentKind == domain.KindFlashcardSession {
			flash = append(flash, e)
		} else {
			acts = append(acts, e)
		}
	}

	var tasks []domain.WeeklyPlanTask
	if len(flash) > 0 {
		tasks = append(tasks, buildTask(
			fmt.Sprintf("%d flashcard session(s)", len(flash)),
			domain.WeeklyTaskReview, domain.KindFlashcardSession, "", flash))
	}
	if len(acts) > 0 {
		tasks = append(tasks, buildTask(
			fmt.Sprintf("%d activity session(s)", len(acts)),
			domain.WeeklyTaskReview, domain.KindActivitySession, "", acts))
	}
	return tasks
}

func practiceTasks(entries []*domain.DailyPlanEntry, mockTitleByID map[string]string) []domain.WeeklyPlanTask {
	var quizSessions []*domain.DailyPlanEntry
	var tasks []domain.WeeklyPlanTask
	for _, e := range entries {
		if e.TaskType != domain.TaskPractice {
			continue
		}
		if e.TargetQuizID != "" {
			label := mockTitleByID[e.TargetQuizID]
			if label == "" {
				label = "Mock exam"
			}
			tasks = append(tasks, buildTask(label, domain.WeeklyTaskPractice,
				domain.KindMockExam, "", []*domain.DailyPlanEntry{e}))
			continue
		}
		quizSessions = append(quizSessions, e)
	}
	if len(quizSessions) > 0 {
		tasks = append(tasks, buildTask(
			fmt.Sprintf("%d quiz session(s)", len(quizSessions)),
			domain.WeeklyTaskPractice, domain.KindQuizSession, "", quizSessions))
	}
	return tasks
}

func buildTask(label string, kind domain.WeeklyTaskKind, contentKind domain.ContentKind, moduleID string, group []*domain.DailyPlanEntry) domain.WeeklyPlanTask {
	ids := make([]string, 0, len(group))
	done := 0
	for _, e := range group {
		ids = append(ids, e.ID)
		if e.Status == domain.StatusCompleted {
			done++
		}
	}
	return domain.WeeklyPlanTask{
		Label:       label,
		Kind:        kind,
		ContentKind: contentKind,
		ModuleID:    moduleID,
		Status:      groupStatus(group),
		EntryIDs:    ids,
		DoneCount:   done,
		TotalCount:  len(group),
	}
}

// groupStatus derives a task's status from its constituent entries:
// completed iff all are completed, in progress if any is, else pending.
func groupStatus(group []*domain.DailyPlanEntry) domain.EntryStatus {
	allDone := len(group) > 0
	anyInProgress := false
	for _, e := range group {
		if e.Status != domain.StatusCompleted {
			allDone = false
		}
		if e.Status == domain.StatusInProgress {
			anyInProgress = true
		}
	}
	if allDone {
		return domain.StatusCompleted
	}
	if anyInProgress {
		return domain.StatusInProgress
	}
	return domain.StatusPending
}

func weekPhase(tasks []domain.WeeklyPlanTask) domain.WeekPhase {
	present := make(map[domain.WeeklyTaskKind]bool, 3)
	for _, t := range tasks {
		present[t.Kind] = true
	}
	if len(present) > 1 {
		return domain.PhaseMixed
	}
	switch {
	case present[domain.WeeklyTaskLearn]:
		return domain.PhaseLearn
	case present[domain.WeeklyTaskReview]:
		return domain.PhaseReview
	default:
		return domain.PhasePractice
	}
}
