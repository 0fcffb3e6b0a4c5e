package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE duplicates from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		videos_enabled INTEGER NOT NULL DEFAULT 1,
		question_banks INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS modules (
		id         TEXT PRIMARY KEY,
		course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_modules_course ON modules(course_id, position)`,

	`CREATE TABLE IF NOT EXISTS module_contents (
		id        TEXT PRIMARY KEY,
		module_id TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		kind      TEXT NOT NULL CHECK(kind IN ('video','notes','quiz')),
		title     TEXT NOT NULL DEFAULT '',
		position  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_module_contents_module ON module_contents(module_id, kind, position)`,

	`CREATE TABLE IF NOT EXISTS flashcards (
		id        TEXT PRIMARY KEY,
		module_id TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_module ON flashcards(module_id, position)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id        TEXT PRIMARY KEY,
		module_id TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_module ON activities(module_id, position)`,

	`CREATE TABLE IF NOT EXISTS mock_exams (
		id             TEXT PRIMARY KEY,
		course_id      TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		question_count INTEGER NOT NULL DEFAULT 0,
		position       INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mock_exams_course ON mock_exams(course_id, position)`,

	`CREATE TABLE IF NOT EXISTS plan_configs (
		user_id              TEXT NOT NULL,
		course_id            TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		exam_date            TEXT NOT NULL,
		study_hours_per_week INTEGER NOT NULL,
		self_rating          TEXT NOT NULL
		                     CHECK(self_rating IN ('NOVICE','INTERMEDIATE','RETAKER')),
		preferred_days       TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL,
		PRIMARY KEY (user_id, course_id)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_entries (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		course_id        TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		date             TEXT NOT NULL,
		task_type        TEXT NOT NULL CHECK(task_type IN ('LEARN','REVIEW','PRACTICE')),
		content_kind     TEXT NOT NULL,
		module_id        TEXT,
		target_quiz_id   TEXT,
		is_off_platform  INTEGER NOT NULL DEFAULT 0,
		estimated_blocks INTEGER NOT NULL CHECK(estimated_blocks BETWEEN 1 AND 4),
		sort_order       INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'PENDING'
		                 CHECK(status IN ('PENDING','IN_PROGRESS','COMPLETED')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_entries_user_course ON plan_entries(user_id, course_id, date, sort_order)`,

	`CREATE TABLE IF NOT EXISTS module_progress (
		user_id    TEXT NOT NULL,
		module_id  TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		learned    INTEGER NOT NULL DEFAULT 0,
		learned_at TEXT,
		PRIMARY KEY (user_id, module_id)
	)`,

	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		quiz_id       TEXT NOT NULL,
		module_id     TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		score         REAL NOT NULL,
		passing_score REAL NOT NULL,
		attempted_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_user_module ON quiz_attempts(user_id, module_id, attempted_at)`,

	`CREATE TABLE IF NOT EXISTS review_ratings (
		user_id    TEXT NOT NULL,
		item_id    TEXT NOT NULL,
		item_kind  TEXT NOT NULL CHECK(item_kind IN ('flashcard','activity')),
		difficulty TEXT NOT NULL CHECK(difficulty IN ('EASY','MEDIUM','HARD')),
		rated_at   TEXT NOT NULL,
		PRIMARY KEY (user_id, item_id)
	)`,
}
