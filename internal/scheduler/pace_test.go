package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is a fixed plan-start anchor (Monday, so week 1 is a full week).
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// thursday starts mid-week, producing a short first week ending Sunday Mar 8.
var thursday = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

func TestDateOf_StripsTimeOfDay(t *testing.T) {
	at := time.Date(2026, 3, 2, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, monday, DateOf(at))
}

func TestWeek1End(t *testing.T) {
	// Monday start runs through the following Sunday.
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Week1End(monday))
	// Thursday start still ends the same Sunday: a short first week.
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Week1End(thursday))
	// A Sunday start is a one-day first week.
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, Week1End(sunday))
}

func TestWeekBounds(t *testing.T) {
	start, end := WeekBounds(thursday, 1)
	assert.Equal(t, thursday, start)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), end)

	// Week 2 is the first full Monday-Sunday week after week 1.
	start, end = WeekBounds(thursday, 2)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), end)

	start, end = WeekBounds(thursday, 4)
	assert.Equal(t, time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekNumberOf(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want int
	}{
		{"start day", monday, 1},
		{"end of week 1", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), 1},
		{"first day of week 2", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 2},
		{"last day of week 2", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 2},
		{"first day of week 3", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), 3},
		{"before plan start clamps to 1", monday.AddDate(0, 0, -10), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekNumberOf(monday, tc.date))
		})
	}
}

func TestWeekNumberOf_RoundTripsWeekBounds(t *testing.T) {
	// Every day inside WeekBounds(n) must bucket back into week n.
	for n := 1; n <= 8; n++ {
		start, end := WeekBounds(thursday, n)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			require.Equal(t, n, WeekNumberOf(thursday, d), "day %s", d.Format("2006-01-02"))
		}
	}
}

func TestWeeksUntilExam(t *testing.T) {
	assert.Equal(t, 1, WeeksUntilExam(monday, monday))
	assert.Equal(t, 2, WeeksUntilExam(monday, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 12, WeeksUntilExam(monday, time.Date(2026, 5, 22, 0, 0, 0, 0, time.UTC)))
}

func TestModulesPerWeek(t *testing.T) {
	assert.Equal(t, 3, ModulesPerWeek(10, 4))
	assert.Equal(t, 1, ModulesPerWeek(4, 8))
	assert.Equal(t, 2, ModulesPerWeek(8, 4))
	// No weeks left still yields a finite (compressed) pace.
	assert.Equal(t, 10, ModulesPerWeek(10, 0))
}

func TestPreferredDateInWeek_CyclesPreferredDays(t *testing.T) {
	exam := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	preferred := []time.Weekday{time.Tuesday, time.Thursday}

	// Week 2 of a Monday plan is Mar 9-15: Tue=Mar 10, Thu=Mar 12.
	d0, ok := PreferredDateInWeek(monday, 2, preferred, 0, exam)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d0)

	d1, ok := PreferredDateInWeek(monday, 2, preferred, 1, exam)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), d1)

	// Index 2 wraps back to Tuesday.
	d2, ok := PreferredDateInWeek(monday, 2, preferred, 2, exam)
	require.True(t, ok)
	assert.Equal(t, d0, d2)
}

func TestPreferredDateInWeek_NoPreferenceUsesEveryDay(t *testing.T) {
	exam := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	d, ok := PreferredDateInWeek(monday, 2, nil, 3, exam)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), d)
}

func TestPreferredDateInWeek_ShortFirstWeekWithoutMatchFallsBackToStart(t *testing.T) {
	exam := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	// Thursday plan start: week 1 is Thu-Sun, so Tuesday never occurs.
	d, ok := PreferredDateInWeek(thursday, 1, []time.Weekday{time.Tuesday}, 0, exam)
	require.True(t, ok)
	assert.Equal(t, thursday, d)
}

func TestPreferredDateInWeek_ClampsToCap(t *testing.T) {
	// Exam on Wednesday of week 2: the Thursday candidate must pull back.
	exam := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	preferred := []time.Weekday{time.Tuesday, time.Thursday}

	d, ok := PreferredDateInWeek(monday, 2, preferred, 1, exam)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d)
}

func TestPreferredDateInWeek_WholeWeekPastCap(t *testing.T) {
	exam := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC) // end of week 1
	_, ok := PreferredDateInWeek(monday, 3, nil, 0, exam)
	assert.False(t, ok)
}
