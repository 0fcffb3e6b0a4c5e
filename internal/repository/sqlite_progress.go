package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mathieuvidal/examplan/internal/db"
	"github.com/mathieuvidal/examplan/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo using a SQLite database.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) ListModuleProgress(ctx context.Context, userID, courseID string) ([]domain.ModuleProgress, error) {
	query := `SELECT p.user_id, p.module_id, p.learned, p.learned_at
		FROM module_progress p
		JOIN modules m ON p.module_id = m.id
		WHERE p.user_id = ? AND m.course_id = ?
		ORDER BY m.position, m.id`
	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing module progress: %w", err)
	}
	defer rows.Close()

	var progress []domain.ModuleProgress
	for rows.Next() {
		var p domain.ModuleProgress
		var learned int
		var learnedAt sql.NullString
		if err := rows.Scan(&p.UserID, &p.ModuleID, &learned, &learnedAt); err != nil {
			return nil, fmt.Errorf("scanning module progress: %w", err)
		}
		p.Learned = intToBool(learned)
		p.LearnedAt = parseNullableTime(learnedAt, time.RFC3339)
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating module progress: %w", err)
	}
	return progress, nil
}

func (r *SQLiteProgressRepo) ListQuizAttempts(ctx context.Context, userID, courseID string) ([]domain.QuizAttempt, error) {
	query := `SELECT a.id, a.user_id, a.quiz_id, a.module_id, a.score, a.passing_score, a.attempted_at
		FROM quiz_attempts a
		JOIN modules m ON a.module_id = m.id
		WHERE a.user_id = ? AND m.course_id = ?
		ORDER BY a.attempted_at`
	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt
	for rows.Next() {
		var a domain.QuizAttempt
		var attemptedAt string
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &a.ModuleID, &a.Score, &a.PassingScore, &attemptedAt); err != nil {
			return nil, fmt.Errorf("scanning quiz attempt: %w", err)
		}
		t, err := time.Parse(time.RFC3339, attemptedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing attempted_at: %w", err)
		}
		a.AttemptedAt = t
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz attempts: %w", err)
	}
	return attempts, nil
}

func (r *SQLiteProgressRepo) ListReviewRatings(ctx context.Context, userID, courseID string, kind domain.ReviewItemKind) ([]domain.ReviewRating, error) {
	// Ratings reference flashcards or activities; the join scopes them to
	// the course through the item's module.
	table := "flashcards"
	if kind == domain.ItemActivity {
		table = "activities"
	}
	query := fmt.Sprintf(`SELECT r.user_id, r.item_id, r.item_kind, r.difficulty, r.rated_at
		FROM review_ratings r
		JOIN %s i ON r.item_id = i.id
		JOIN modules m ON i.module_id = m.id
		WHERE r.user_id = ? AND r.item_kind = ? AND m.course_id = ?
		ORDER BY r.rated_at`, table)
	rows, err := r.db.QueryContext(ctx, query, userID, string(kind), courseID)
	if err != nil {
		return nil, fmt.Errorf("listing review ratings: %w", err)
	}
	defer rows.Close()

	var ratings []domain.ReviewRating
	for rows.Next() {
		var rr domain.ReviewRating
		var ratedAt string
		if err := rows.Scan(&rr.UserID, &rr.ItemID, &rr.ItemKind, &rr.Difficulty, &ratedAt); err != nil {
			return nil, fmt.Errorf("scanning review rating: %w", err)
		}
		t, err := time.Parse(time.RFC3339, ratedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing rated_at: %w", err)
		}
		rr.RatedAt = t
		ratings = append(ratings, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review ratings: %w", err)
	}
	return ratings, nil
}
