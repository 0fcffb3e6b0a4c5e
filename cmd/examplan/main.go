package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mathieuvidal/examplan/internal/cli"
	"github.com/mathieuvidal/examplan/internal/db"
	"github.com/mathieuvidal/examplan/internal/repository"
	"github.com/mathieuvidal/examplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.examplan/examplan.db
	dbPath := os.Getenv("EXAMPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".examplan", "examplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	contentRepo := repository.NewSQLiteContentRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.OpObserver
	if os.Getenv("EXAMPLAN_VERBOSE") != "" {
		observers = append(observers, service.NewLogOpObserver(os.Stderr))
	}

	app := &cli.App{
		Plans:   service.NewPlanService(contentRepo, planRepo, uow, observers...),
		Weekly:  service.NewWeeklyService(contentRepo, planRepo, observers...),
		Review:  service.NewReviewService(contentRepo, progressRepo, observers...),
		Entries: service.NewEntryService(planRepo, observers...),
		SeedFn:  func() error { return seedDemo(database) },
	}

	return cli.NewRootCmd(app).Execute()
}

// seedDemo inserts a small course ("demo") so the CLI can be exercised
// end-to-end without a content import pipeline.
func seedDemo(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	exec := func(query string, args ...any) error {
		_, err := database.Exec(query, args...)
		return err
	}

	if err := exec(`INSERT OR IGNORE INTO courses (id, title, videos_enabled, question_banks, created_at)
		VALUES ('demo', 'Demo certification course', 1, 3, ?)`, now); err != nil {
		return fmt.Errorf("seeding course: %w", err)
	}

	for i := 1; i <= 6; i++ {
		moduleID := fmt.Sprintf("demo-m%02d", i)
		if err := exec(`INSERT OR IGNORE INTO modules (id, course_id, title, position, created_at)
			VALUES (?, 'demo', ?, ?, ?)`, moduleID, fmt.Sprintf("Module %d", i), i-1, now); err != nil {
			return fmt.Errorf("seeding module %d: %w", i, err)
		}
		for j, kind := range []string{"video", "notes", "quiz"} {
			id := fmt.Sprintf("%s-%s", moduleID, kind)
			if err := exec(`INSERT OR IGNORE INTO module_contents (id, module_id, kind, title, position)
				VALUES (?, ?, ?, ?, ?)`, id, moduleID, kind, kind, j); err != nil {
				return fmt.Errorf("seeding contents: %w", err)
			}
		}
		for j := 1; j <= 12; j++ {
			if err := exec(`INSERT OR IGNORE INTO flashcards (id, module_id, position) VALUES (?, ?, ?)`,
				fmt.Sprintf("%s-f%02d", moduleID, j), moduleID, j-1); err != nil {
				return fmt.Errorf("seeding flashcards: %w", err)
			}
		}
		for j := 1; j <= 6; j++ {
			if err := exec(`INSERT OR IGNORE INTO activities (id, module_id, position) VALUES (?, ?, ?)`,
				fmt.Sprintf("%s-a%02d", moduleID, j), moduleID, j-1); err != nil {
				return fmt.Errorf("seeding activities: %w", err)
			}
		}
	}

	for i := 1; i <= 2; i++ {
		if err := exec(`INSERT OR IGNORE INTO mock_exams (id, course_id, title, question_count, position)
			VALUES (?, 'demo', ?, 100, ?)`, fmt.Sprintf("demo-mock%d", i), fmt.Sprintf("Practice exam %d", i), i-1); err != nil {
			return fmt.Errorf("seeding mock exams: %w", err)
		}
	}
	return nil
}
