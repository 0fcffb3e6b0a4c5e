package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mathieuvidal/examplan/internal/db"
	"github.com/mathieuvidal/examplan/internal/domain"
)

// SQLiteContentRepo implements ContentRepo over the course content tables.
type SQLiteContentRepo struct {
	db db.DBTX
}

// NewSQLiteContentRepo creates a new SQLiteContentRepo.
func NewSQLiteContentRepo(conn db.DBTX) *SQLiteContentRepo {
	return &SQLiteContentRepo{db: conn}
}

func (r *SQLiteContentRepo) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	query := `SELECT id, title, videos_enabled, question_banks FROM courses WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, courseID)

	var c domain.Course
	var videosEnabled int
	err := row.Scan(&c.ID, &c.Title, &videosEnabled, &c.QuestionBanks)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	c.VideosEnabled = intToBool(videosEnabled)
	return &c, nil
}

// ListModuleInventories returns the course's modules in order, each with
// per-kind content counts aggregated from module_contents, flashcards and
// activities.
func (r *SQLiteContentRepo) ListModuleInventories(ctx context.Context, courseID string) ([]domain.ModuleInventory, error) {
	query := `SELECT m.id, m.course_id, m.title, m.position,
		COALESCE(SUM(CASE WHEN c.kind = 'video' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN c.kind = 'notes' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN c.kind = 'quiz' THEN 1 ELSE 0 END), 0),
		(SELECT COUNT(*) FROM flashcards f WHERE f.module_id = m.id),
		(SELECT COUNT(*) FROM activities a WHERE a.module_id = m.id)
		FROM modules m
		LEFT JOIN module_contents c ON c.module_id = m.id
		WHERE m.course_id = ?
		GROUP BY m.id
		ORDER BY m.position, m.id`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing module inventories: %w", err)
	}
	defer rows.Close()

	var modules []domain.ModuleInventory
	for rows.Next() {
		var m domain.ModuleInventory
		if err := rows.Scan(
			&m.ID, &m.CourseID, &m.Title, &m.Order,
			&m.Videos, &m.Notes, &m.Quizzes, &m.Flashcards, &m.Activities,
		); err != nil {
			return nil, fmt.Errorf("scanning module inventory: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating module inventories: %w", err)
	}
	return modules, nil
}

func (r *SQLiteContentRepo) ListMockExams(ctx context.Context, courseID string) ([]domain.MockExam, error) {
	query := `SELECT id, course_id, title, question_count
		FROM mock_exams WHERE course_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing mock exams: %w", err)
	}
	defer rows.Close()

	var exams []domain.MockExam
	for rows.Next() {
		var e domain.MockExam
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Title, &e.QuestionCount); err != nil {
			return nil, fmt.Errorf("scanning mock exam: %w", err)
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mock exams: %w", err)
	}
	return exams, nil
}

func (r *SQLiteContentRepo) ListFlashcardIDsByModule(ctx context.Context, courseID string) (map[string][]string, error) {
	return r.listItemIDs(ctx, courseID, "flashcards")
}

func (r *SQLiteContentRepo) ListActivityIDsByModule(ctx context.Context, courseID string) (map[string][]string, error) {
	return r.listItemIDs(ctx, courseID, "activities")
}

func (r *SQLiteContentRepo) listItemIDs(ctx context.Context, courseID, table string) (map[string][]string, error) {
	// table is one of two fixed identifiers, never user input.
	query := fmt.Sprintf(`SELECT i.module_id, i.id
		FROM %s i
		JOIN modules m ON i.module_id = m.id
		WHERE m.course_id = ?
		ORDER BY m.position, i.position, i.id`, table)
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	defer rows.Close()

	byModule := make(map[string][]string)
	for rows.Next() {
		var moduleID, itemID string
		if err := rows.Scan(&moduleID, &itemID); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		byModule[moduleID] = append(byModule[moduleID], itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return byModule, nil
}
