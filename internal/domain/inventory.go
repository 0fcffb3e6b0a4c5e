package domain

// Course is the minimal course record the scheduler cares about.
type Course struct {
	ID            string
	Title         string
	VideosEnabled bool
	QuestionBanks int
}

// ModuleInventory is a read-only snapshot of one course module's learnable
// content, taken fresh per plan generation.
type ModuleInventory struct {
	ID         string
	CourseID   string
	Title      string
	Order      int
	Videos     int
	Notes      int
	Quizzes    int
	Flashcards int
	Activities int
}

// EstimatedBlocks is the module's learn cost in 30-minute blocks:
// 2 per video, 1 per quiz, 1 per notes document.
func (m *ModuleInventory) EstimatedBlocks() int {
	return 2*m.Videos + m.Quizzes + m.Notes
}

// HasContent reports whether the module carries any learnable content at all.
func (m *ModuleInventory) HasContent() bool {
	return m.Videos+m.Notes+m.Quizzes+m.Flashcards+m.Activities > 0
}

// MinimumLearnBlocks is the floor of Learn blocks a module with content must
// receive in a generated plan. Placeholder blocks for missing notes/quiz
// content count toward it.
func (m *ModuleInventory) MinimumLearnBlocks() int {
	if !m.HasContent() {
		return 0
	}
	return 4
}

// MockExam is a full-length practice exam attached to a course.
type MockExam struct {
	ID            string
	CourseID      string
	Title         string
	QuestionCount int
}

// CourseInventory aggregates everything the scheduler needs to know about a
// course's published content.
type CourseInventory struct {
	CourseID        string
	Modules         []ModuleInventory
	TotalFlashcards int
	TotalActivities int
	QuestionBanks   int
	MockExams       []MockExam
	VideosEnabled   bool
}

// MinimumStudyBlocks is the feasibility floor: the sum of per-module Learn
// minimums across the course.
func (c *CourseInventory) MinimumStudyBlocks() int {
	total := 0
	for i := range c.Modules {
		total += c.Modules[i].MinimumLearnBlocks()
	}
	return total
}
