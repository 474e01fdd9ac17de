package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks hf-council/internal/storage RunStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// RunStore defines the interface for run history operations.
type RunStore interface {
	// Save stores a run and its answers atomically.
	// Missing IDs and timestamps are filled in; the stored run is returned.
	Save(ctx context.Context, run RunRecord, answers []AnswerRecord) (RunRecord, error)
	// Get returns a run and its answers ordered by position.
	// Returns ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (RunRecord, []AnswerRecord, error)
	// ListRecent returns up to limit runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]RunRecord, error)
}

// RunRepo provides methods for run history operations.
// It implements the RunStore interface.
type RunRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db, now: time.Now}
}

// Save stores a run and its answers in a single transaction.
func (r *RunRepo) Save(ctx context.Context, run RunRecord, answers []AnswerRecord) (RunRecord, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = r.now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // No-op after commit
	}()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, kind, prompt, created_at) VALUES (?, ?, ?, ?)",
		run.ID, run.Kind, run.Prompt, run.CreatedAt,
	); err != nil {
		return RunRecord{}, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, answer := range answers {
		if answer.ID == "" {
			answer.ID = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO answers (id, run_id, position, model, role, content, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
			answer.ID, run.ID, i, answer.Model, answer.Role, answer.Content, answer.Error,
		); err != nil {
			return RunRecord{}, fmt.Errorf("failed to insert answer %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("failed to commit run: %w", err)
	}

	return run, nil
}

// Get returns a run and its answers ordered by position.
func (r *RunRepo) Get(ctx context.Context, id string) (RunRecord, []AnswerRecord, error) {
	var run RunRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, kind, prompt, created_at FROM runs WHERE id = ?",
		id,
	).Scan(&run.ID, &run.Kind, &run.Prompt, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, nil, ErrNotFound
	}
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, run_id, position, model, role, content, error FROM answers WHERE run_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.ID, &a.RunID, &a.Position, &a.Model, &a.Role, &a.Content, &a.Error); err != nil {
			return RunRecord{}, nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, nil, fmt.Errorf("failed to iterate answers: %w", err)
	}

	return run, answers, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, kind, prompt, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(&run.ID, &run.Kind, &run.Prompt, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
