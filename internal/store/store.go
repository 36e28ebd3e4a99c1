package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/rahul/tripsmith/internal/planner"
)

// ErrNotFound is returned when a plan id does not exist.
var ErrNotFound = errors.New("plan not found")

// PlanStore persists PlanRecords in a single sqlite table. Writes are
// append-only; the only destructive operation is delete-by-id. There
// is no update path, so records are immutable once inserted.
type PlanStore struct {
	DB *sql.DB
}

func NewPlanStore(dbPath string) (*PlanStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create table if not exists
	query := `CREATE TABLE IF NOT EXISTS task_plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		goal VARCHAR(500) NOT NULL,
		plan_steps TEXT NOT NULL,
		enriched_info TEXT,
		full_result TEXT,
		status VARCHAR(50) DEFAULT 'completed',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(query); err != nil {
		return nil, err
	}

	return &PlanStore{DB: db}, nil
}

func (s *PlanStore) Close() error {
	return s.DB.Close()
}

// Append inserts one record and returns the store-assigned id.
func (s *PlanStore) Append(ctx context.Context, rec *planner.PlanRecord) (int64, error) {
	steps, err := json.Marshal(rec.Steps)
	if err != nil {
		return 0, fmt.Errorf("encode steps: %w", err)
	}
	enriched, err := json.Marshal(rec.Enriched)
	if err != nil {
		return 0, fmt.Errorf("encode enrichment: %w", err)
	}

	status := rec.Status
	if status == "" {
		status = planner.StatusCompleted
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `INSERT INTO task_plans (goal, plan_steps, enriched_info, full_result, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.DB.ExecContext(ctx, query, rec.Goal, string(steps), string(enriched), rec.FullResult, status, createdAt)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rec.ID = id
	rec.Status = status
	rec.CreatedAt = createdAt
	return id, nil
}

// List returns all records, newest first.
func (s *PlanStore) List(ctx context.Context) ([]planner.PlanRecord, error) {
	query := `SELECT id, goal, plan_steps, enriched_info, full_result, status, created_at FROM task_plans ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []planner.PlanRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, rec)
	}
	return plans, rows.Err()
}

// Get returns the record with the given id, or ErrNotFound.
func (s *PlanStore) Get(ctx context.Context, id int64) (*planner.PlanRecord, error) {
	query := `SELECT id, goal, plan_steps, enriched_info, full_result, status, created_at FROM task_plans WHERE id = ?`
	row := s.DB.QueryRowContext(ctx, query, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record with the given id, or returns ErrNotFound.
func (s *PlanStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM task_plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored plans.
func (s *PlanStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_plans`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (planner.PlanRecord, error) {
	var (
		rec        planner.PlanRecord
		steps      string
		enriched   sql.NullString
		fullResult sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.Goal, &steps, &enriched, &fullResult, &rec.Status, &rec.CreatedAt); err != nil {
		return planner.PlanRecord{}, err
	}
	rec.Steps = decodeSteps(steps)
	rec.Enriched = decodeEnrichment(enriched.String)
	rec.FullResult = fullResult.String
	return rec, nil
}

// decodeSteps tolerates corrupt blobs: a stored value that fails to
// parse comes back as an empty sequence, never as an error.
func decodeSteps(raw string) []planner.DaySteps {
	if raw == "" {
		return []planner.DaySteps{}
	}
	var steps []planner.DaySteps
	if err := json.Unmarshal([]byte(raw), &steps); err != nil || steps == nil {
		return []planner.DaySteps{}
	}
	return steps
}

// decodeEnrichment degrades to the empty bundle on corrupt data.
func decodeEnrichment(raw string) planner.Enrichment {
	if raw == "" {
		return planner.Enrichment{}
	}
	var enr planner.Enrichment
	if err := json.Unmarshal([]byte(raw), &enr); err != nil {
		return planner.Enrichment{}
	}
	return enr
}
