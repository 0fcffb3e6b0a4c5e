package domain

import "time"

// StudyPlanConfig holds a student's scheduling inputs for one course.
// Editing a plan replaces the whole config; no field-level history is kept.
type StudyPlanConfig struct {
	UserID             string
	CourseID           string
	ExamDate           time.Time
	StudyHoursPerWeek  int
	SelfRating         SelfRating
	PreferredStudyDays []time.Weekday
	CreatedAt          time.Time
}

// BlocksPerWeek converts the weekly hour budget into 30-minute blocks.
func (c *StudyPlanConfig) BlocksPerWeek() int {
	return c.StudyHoursPerWeek * 2
}
