package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mathieuvidal/examplan/internal/db"
	"github.com/mathieuvidal/examplan/internal/domain"
)

const dateLayout = "2006-01-02"

// SQLitePlanRepo implements PlanRepo using a SQLite database. Construct it
// from a UnitOfWork's DBTX when calling ReplaceAll so the delete and the
// inserts share one transaction.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

// SaveConfig stores a plan configuration, replacing any previous one for
// the same user and course in full.
func (r *SQLitePlanRepo) SaveConfig(ctx context.Context, cfg *domain.StudyPlanConfig) error {
	query := `INSERT INTO plan_configs
		(user_id, course_id, exam_date, study_hours_per_week, self_rating, preferred_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, course_id) DO UPDATE SET
			exam_date = excluded.exam_date,
			study_hours_per_week = excluded.study_hours_per_week,
			self_rating = excluded.self_rating,
			preferred_days = excluded.preferred_days,
			created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query,
		cfg.UserID,
		cfg.CourseID,
		cfg.ExamDate.Format(dateLayout),
		cfg.StudyHoursPerWeek,
		string(cfg.SelfRating),
		encodeWeekdays(cfg.PreferredStudyDays),
		cfg.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving plan config: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetConfig(ctx context.Context, userID, courseID string) (*domain.StudyPlanConfig, error) {
	query := `SELECT user_id, course_id, exam_date, study_hours_per_week, self_rating, preferred_days, created_at
		FROM plan_configs WHERE user_id = ? AND course_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID, courseID)

	var cfg domain.StudyPlanConfig
	var examDateStr, ratingStr, daysStr, createdAtStr string
	err := row.Scan(&cfg.UserID, &cfg.CourseID, &examDateStr, &cfg.StudyHoursPerWeek, &ratingStr, &daysStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan config: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan config: %w", err)
	}

	cfg.ExamDate, err = time.Parse(dateLayout, examDateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", err)
	}
	cfg.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	cfg.SelfRating = domain.SelfRating(ratingStr)
	cfg.PreferredStudyDays = decodeWeekdays(daysStr)
	return &cfg, nil
}

// ReplaceAll discards the user's existing plan entries for the course and
// inserts the new set. Run inside a transaction: a partially replaced plan
// would reference a stale pace calculation.
func (r *SQLitePlanRepo) ReplaceAll(ctx context.Context, userID, courseID string, entries []*domain.DailyPlanEntry) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM plan_entries WHERE user_id = ? AND course_id = ?`,
		userID, courseID,
	); err != nil {
		return fmt.Errorf("deleting previous plan entries: %w", err)
	}

	insert := `INSERT INTO plan_entries
		(id, user_id, course_id, date, task_type, content_kind, module_id, target_quiz_id,
		 is_off_platform, estimated_blocks, sort_order, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := r.db.ExecContext(ctx, insert,
			e.ID,
			e.UserID,
			e.CourseID,
			e.Date.Format(dateLayout),
			string(e.TaskType),
			string(e.ContentKind),
			nullableString(e.ModuleID),
			nullableString(e.TargetQuizID),
			boolToInt(e.IsOffPlatform),
			e.EstimatedBlocks,
			e.Order,
			string(e.Status),
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.UpdatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting plan entry %s: %w", e.ID, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) ListByUserCourse(ctx context.Context, userID, courseID string) ([]*domain.DailyPlanEntry, error) {
	query := entrySelect + ` WHERE user_id = ? AND course_id = ? ORDER BY date, sort_order`
	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing plan entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLitePlanRepo) GetEntry(ctx context.Context, id string) (*domain.DailyPlanEntry, error) {
	row := r.db.QueryRowContext(ctx, entrySelect+` WHERE id = ?`, id)
	e, err := scanEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan entry: %w", err)
	}
	return e, nil
}

func (r *SQLitePlanRepo) UpdateStatus(ctx context.Context, id string, status domain.EntryStatus, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_entries SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("updating entry status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan entry %s: %w", id, ErrNotFound)
	}
	return nil
}

const entrySelect = `SELECT id, user_id, course_id, date, task_type, content_kind,
	module_id, target_quiz_id, is_off_platform, estimated_blocks, sort_order,
	status, created_at, updated_at
	FROM plan_entries`

// scanEntry reads one entry through any row-scan function.
func scanEntry(scan func(dest ...any) error) (*domain.DailyPlanEntry, error) {
	var e domain.DailyPlanEntry
	var dateStr, taskType, contentKind, status, createdAtStr, updatedAtStr string
	var moduleID, targetQuizID sql.NullString
	var offPlatform int

	if err := scan(
		&e.ID, &e.UserID, &e.CourseID, &dateStr, &taskType, &contentKind,
		&moduleID, &targetQuizID, &offPlatform, &e.EstimatedBlocks, &e.Order,
		&status, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	var err error
	e.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	// The schema does not constrain content_kind, so a row written by an
	// older binary or by hand is caught here rather than leaking an
	// unrenderable kind into the weekly view.
	if !domain.ValidContentKinds[contentKind] {
		return nil, fmt.Errorf("plan entry %s: unknown content kind %q", e.ID, contentKind)
	}
	e.TaskType = domain.TaskType(taskType)
	e.ContentKind = domain.ContentKind(contentKind)
	e.Status = domain.EntryStatus(status)
	e.ModuleID = moduleID.String
	e.TargetQuizID = targetQuizID.String
	e.IsOffPlatform = intToBool(offPlatform)
	return &e, nil
}

func (r *SQLitePlanRepo) scanEntries(rows *sql.Rows) ([]*domain.DailyPlanEntry, error) {
	var entries []*domain.DailyPlanEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning plan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan entries: %w", err)
	}
	return entries, nil
}
