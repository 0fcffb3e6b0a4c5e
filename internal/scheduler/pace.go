package scheduler

import "time"

// The plan calendar uses one consistent week model: week 1 runs from the
// plan-creation day through the following Sunday (a short first week), and
// every later week is a standard Monday-Sunday week anchored off week 1's
// end. All date math works on day precision in UTC.

// DateOf strips the time-of-day component, normalizing to midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Week1End returns the first Sunday on or after the plan start day.
func Week1End(week1Start time.Time) time.Time {
	d := DateOf(week1Start)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// WeekBounds returns the inclusive start and end dates of week n (n >= 1).
func WeekBounds(week1Start time.Time, n int) (time.Time, time.Time) {
	w1End := Week1End(week1Start)
	if n <= 1 {
		return DateOf(week1Start), w1End
	}
	start := w1End.AddDate(0, 0, 1+7*(n-2))
	return start, start.AddDate(0, 0, 6)
}

// WeekNumberOf buckets a date into its plan week number, clamped to a
// minimum of week 1 (dates before the plan start count as week 1).
func WeekNumberOf(week1Start, d time.Time) int {
	day := DateOf(d)
	w1End := Week1End(week1Start)
	if !day.After(w1End) {
		return 1
	}
	days := int(day.Sub(w1End).Hours() / 24)
	return 2 + (days-1)/7
}

// WeeksUntilExam counts plan weeks from creation through the exam week,
// inclusive, never less than 1.
func WeeksUntilExam(createdAt, examDate time.Time) int {
	n := WeekNumberOf(createdAt, examDate)
	if n < 1 {
		return 1
	}
	return n
}

// ModulesPerWeek is the ceiling-division pace used to pack modules into the
// available Phase-1 weeks.
func ModulesPerWeek(moduleCount, availableWeeks int) int {
	if availableWeeks < 1 {
		availableWeeks = 1
	}
	return ceilDiv(moduleCount, availableWeeks)
}

// PreferredDateInWeek picks the idx-th date within week n that falls on one
// of the student's preferred weekdays, cycling when idx exceeds the number
// of matches. If no preferred weekday falls inside the week, the week's
// start day is used. Dates after cap are never returned: the latest
// candidate on or before cap is chosen instead, and ok is false only when
// the whole week lies past cap.
func PreferredDateInWeek(week1Start time.Time, weekNum int, preferred []time.Weekday, idx int, latest time.Time) (time.Time, bool) {
	start, end := WeekBounds(week1Start, weekNum)
	capDay := DateOf(latest)

	wanted := make(map[time.Weekday]bool, len(preferred))
	for _, wd := range preferred {
		wanted[wd] = true
	}

	var candidates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if len(wanted) == 0 || wanted[d.Weekday()] {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		candidates = []time.Time{start}
	}

	chosen := candidates[idx%len(candidates)]
	if !latest.IsZero() && chosen.After(capDay) {
		// Walk back to the latest candidate still on or before the cap.
		for i := len(candidates) - 1; i >= 0; i-- {
			if !candidates[i].After(capDay) {
				return candidates[i], true
			}
		}
		return time.Time{}, false
	}
	return chosen, true
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
