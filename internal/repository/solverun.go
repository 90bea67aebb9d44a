package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paiban/logbook/pkg/errors"
	"github.com/paiban/logbook/pkg/model"
)

// SolveRun is one persisted audit record of a solve: its input, its
// output document, and bookkeeping around when and how long it took.
// Solves are stateless (spec.md §5); this table exists purely so a past
// run can be inspected after the fact, not to feed future solves.
type SolveRun struct {
	ID          uuid.UUID
	RunID       string
	Date        string
	Status      model.Status
	Input       json.RawMessage
	Output      json.RawMessage
	RuntimeMs   int64
	CreatedAt   time.Time
}

// SolveRunRepository records and retrieves solve-run audit entries.
type SolveRunRepository interface {
	Record(ctx context.Context, runID string, in *model.Input, out *model.Output) error
	GetByRunID(ctx context.Context, runID string) (*SolveRun, error)
	List(ctx context.Context, filter ListFilter) ([]*SolveRun, int, error)
}

// PostgresSolveRunRepository stores solve-run audit entries in Postgres,
// following the teacher's query-building style in this package.
type PostgresSolveRunRepository struct {
	db DB
}

// NewPostgresSolveRunRepository builds a PostgresSolveRunRepository over
// an open database connection.
func NewPostgresSolveRunRepository(db DB) *PostgresSolveRunRepository {
	return &PostgresSolveRunRepository{db: db}
}

// Record persists the input and output document of one solve.
func (r *PostgresSolveRunRepository) Record(ctx context.Context, runID string, in *model.Input, out *model.Output) error {
	inputJSON, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to marshal solve input for audit log")
	}
	outputJSON, err := json.Marshal(out)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to marshal solve output for audit log")
	}

	query := `
		INSERT INTO solve_runs (id, run_id, date, status, input, output, runtime_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		uuid.New(), runID, in.Date, string(out.Metadata.Status),
		inputJSON, outputJSON, out.Metadata.RuntimeMs, time.Now(),
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to insert solve-run audit entry")
	}
	return nil
}

// GetByRunID looks up a solve-run audit entry by its correlation id.
func (r *PostgresSolveRunRepository) GetByRunID(ctx context.Context, runID string) (*SolveRun, error) {
	query := `
		SELECT id, run_id, date, status, input, output, runtime_ms, created_at
		FROM solve_runs WHERE run_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, runID)

	run, err := scanSolveRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("solve_run", runID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load solve-run audit entry")
	}
	return run, nil
}

// List returns the most recent solve-run audit entries, newest first.
func (r *PostgresSolveRunRepository) List(ctx context.Context, filter ListFilter) ([]*SolveRun, int, error) {
	if filter.Limit <= 0 {
		filter = DefaultListFilter()
	}

	countRow := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM solve_runs`)
	var total int
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to count solve-run audit entries")
	}

	query := fmt.Sprintf(`
		SELECT id, run_id, date, status, input, output, runtime_ms, created_at
		FROM solve_runs ORDER BY created_at DESC LIMIT %d OFFSET %d
	`, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to list solve-run audit entries")
	}
	defer rows.Close()

	var runs []*SolveRun
	for rows.Next() {
		run, err := scanSolveRun(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan solve-run audit entry")
		}
		runs = append(runs, run)
	}
	return runs, total, nil
}

func scanSolveRun(s Scanner) (*SolveRun, error) {
	var run SolveRun
	var status string
	var inputJSON, outputJSON []byte
	if err := s.Scan(&run.ID, &run.RunID, &run.Date, &status, &inputJSON, &outputJSON, &run.RuntimeMs, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Status = model.Status(status)
	run.Input = json.RawMessage(inputJSON)
	run.Output = json.RawMessage(outputJSON)
	return &run, nil
}
