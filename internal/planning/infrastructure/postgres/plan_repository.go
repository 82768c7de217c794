package postgres

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	planapp "taloyhtio-cloud/internal/planning/application"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// DBTX abstracts *sql.DB and *sql.Tx so repositories run inside caller
// transactions when needed.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PlanSnapshotRepository persists generated plans as append-only versions.
type PlanSnapshotRepository struct {
	db DBTX
}

// NewPlanSnapshotRepository constructs a repository.
func NewPlanSnapshotRepository(db DBTX) *PlanSnapshotRepository {
	return &PlanSnapshotRepository{db: db}
}

// SaveSnapshot inserts the snapshot as the company's next version and fills
// in the assigned id and version.
func (r *PlanSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *planapp.PlanSnapshot) error {
	if r == nil || r.db == nil {
		return errors.New("plan snapshot repo: nil db")
	}
	if snapshot == nil {
		return errors.New("plan snapshot repo: nil snapshot")
	}
	if snapshot.CompanyID == "" {
		return portfolio.ErrEmptyCompanyID
	}
	if snapshot.ID == "" {
		snapshot.ID = newSnapshotID()
	}
	if snapshot.GeneratedAt.IsZero() {
		snapshot.GeneratedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(snapshot.Plan)
	if err != nil {
		return err
	}

	row := r.db.QueryRowContext(ctx, `
INSERT INTO plan_snapshots (id, company_id, version, payload, generated_at)
VALUES ($1, $2, (SELECT COALESCE(MAX(version), 0) + 1 FROM plan_snapshots WHERE company_id = $2), $3, $4)
RETURNING version`,
		snapshot.ID, snapshot.CompanyID, payload, snapshot.GeneratedAt)
	return row.Scan(&snapshot.Version)
}

// LatestSnapshot loads the highest version for a company, nil when none
// exists.
func (r *PlanSnapshotRepository) LatestSnapshot(ctx context.Context, companyID string) (*planapp.PlanSnapshot, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("plan snapshot repo: nil db")
	}
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, company_id, version, payload, generated_at
FROM plan_snapshots
WHERE company_id = $1
ORDER BY version DESC
LIMIT 1`, companyID)

	var (
		snapshot planapp.PlanSnapshot
		payload  []byte
	)
	err := row.Scan(&snapshot.ID, &snapshot.CompanyID, &snapshot.Version, &payload, &snapshot.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &snapshot.Plan); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func newSnapshotID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return "plan-" + hex.EncodeToString(buf)
}
