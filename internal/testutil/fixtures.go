package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// CourseSpec describes a course to seed into a test database.
type CourseSpec struct {
	ID            string
	Title         string
	VideosEnabled bool
	QuestionBanks int
	Modules       []ModuleSpec
	MockExams     []MockExamSpec
}

// ModuleSpec describes one module's content counts.
type ModuleSpec struct {
	ID         string
	Title      string
	Videos     int
	Notes      int
	Quizzes    int
	Flashcards int
	Activities int
}

// MockExamSpec describes one mock exam.
type MockExamSpec struct {
	ID            string
	Title         string
	QuestionCount int
}

// CourseOption mutates a CourseSpec before seeding.
type CourseOption func(*CourseSpec)

// WithVideosDisabled marks the course as having no video content delivery.
func WithVideosDisabled() CourseOption {
	return func(c *CourseSpec) { c.VideosEnabled = false }
}

// WithMockExams attaches count mock exams named "Mock exam N".
func WithMockExams(count int) CourseOption {
	return func(c *CourseSpec) {
		for i := 0; i < count; i++ {
			c.MockExams = append(c.MockExams, MockExamSpec{
				ID:            uuid.NewString(),
				Title:         fmt.Sprintf("Mock exam %d", i+1),
				QuestionCount: 100,
			})
		}
	}
}

// WithUniformModules attaches count modules, each with the given content
// counts, titled "Module N".
func WithUniformModules(count, videos, notes, quizzes, flashcards, activities int) CourseOption {
	return func(c *CourseSpec) {
		for i := 0; i < count; i++ {
			c.Modules = append(c.Modules, ModuleSpec{
				ID:         fmt.Sprintf("%s-m%02d", c.ID, i+1),
				Title:      fmt.Sprintf("Module %d", i+1),
				Videos:     videos,
				Notes:      notes,
				Quizzes:    quizzes,
				Flashcards: flashcards,
				Activities: activities,
			})
		}
	}
}

// SeedCourse inserts a course with modules, contents, flashcards,
// activities and mock exams, returning the CourseSpec that was seeded.
func SeedCourse(t *testing.T, database *sql.DB, courseID string, opts ...CourseOption) CourseSpec {
	t.Helper()

	spec := CourseSpec{ID: courseID, Title: "Course " + courseID, VideosEnabled: true}
	for _, opt := range opts {
		opt(&spec)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	mustExec(t, database,
		`INSERT INTO courses (id, title, videos_enabled, question_banks, created_at) VALUES (?, ?, ?, ?, ?)`,
		spec.ID, spec.Title, boolInt(spec.VideosEnabled), spec.QuestionBanks, now)

	for pos, m := range spec.Modules {
		mustExec(t, database,
			`INSERT INTO modules (id, course_id, title, position, created_at) VALUES (?, ?, ?, ?, ?)`,
			m.ID, spec.ID, m.Title, pos, now)
		seedContents(t, database, m.ID, "video", m.Videos)
		seedContents(t, database, m.ID, "notes", m.Notes)
		seedContents(t, database, m.ID, "quiz", m.Quizzes)
		for i := 0; i < m.Flashcards; i++ {
			mustExec(t, database,
				`INSERT INTO flashcards (id, module_id, position) VALUES (?, ?, ?)`,
				fmt.Sprintf("%s-f%02d", m.ID, i+1), m.ID, i)
		}
		for i := 0; i < m.Activities; i++ {
			mustExec(t, database,
				`INSERT INTO activities (id, module_id, position) VALUES (?, ?, ?)`,
				fmt.Sprintf("%s-a%02d", m.ID, i+1), m.ID, i)
		}
	}

	for pos, e := range spec.MockExams {
		mustExec(t, database,
			`INSERT INTO mock_exams (id, course_id, title, question_count, position) VALUES (?, ?, ?, ?, ?)`,
			e.ID, spec.ID, e.Title, e.QuestionCount, pos)
	}
	return spec
}

// MarkModuleLearned records that the user finished learning a module.
func MarkModuleLearned(t *testing.T, database *sql.DB, userID, moduleID string) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	mustExec(t, database,
		`INSERT INTO module_progress (user_id, module_id, learned, learned_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(user_id, module_id) DO UPDATE SET learned = 1, learned_at = excluded.learned_at`,
		userID, moduleID, now)
}

// RecordQuizAttempt stores a graded attempt for a module's quiz.
func RecordQuizAttempt(t *testing.T, database *sql.DB, userID, moduleID string, score, passing float64, at time.Time) {
	t.Helper()
	mustExec(t, database,
		`INSERT INTO quiz_attempts (id, user_id, quiz_id, module_id, score, passing_score, attempted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, moduleID+"-quiz", moduleID, score, passing, at.UTC().Format(time.RFC3339))
}

// RateItemHard records a HARD difficulty rating for a review item.
func RateItemHard(t *testing.T, database *sql.DB, userID, itemID, itemKind string) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	mustExec(t, database,
		`INSERT INTO review_ratings (user_id, item_id, item_kind, difficulty, rated_at) VALUES (?, ?, ?, 'HARD', ?)
		 ON CONFLICT(user_id, item_id) DO UPDATE SET difficulty = 'HARD', rated_at = excluded.rated_at`,
		userID, itemID, itemKind, now)
}

func seedContents(t *testing.T, database *sql.DB, moduleID, kind string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		mustExec(t, database,
			`INSERT INTO module_contents (id, module_id, kind, title, position) VALUES (?, ?, ?, ?, ?)`,
			fmt.Sprintf("%s-%s%02d", moduleID, kind, i+1), moduleID, kind, fmt.Sprintf("%s %d", kind, i+1), i)
	}
}

func mustExec(t *testing.T, database *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.Exec(query, args...); err != nil {
		t.Fatalf("fixture exec failed: %v\nquery: %s", err, query)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
