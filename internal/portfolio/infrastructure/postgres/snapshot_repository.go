package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// SnapshotRepository is a Postgres implementation for financial snapshots.
// Snapshots are append-only; there is no update path.
type SnapshotRepository struct {
	db DBTX
}

// NewSnapshotRepository constructs a repository.
func NewSnapshotRepository(db DBTX) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Latest returns the newest snapshot of one company.
func (r *SnapshotRepository) Latest(ctx context.Context, companyID string) (*portfolio.FinancialSnapshot, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("snapshot repo: nil db")
	}
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}

	var snapshot portfolio.FinancialSnapshot
	err := r.db.QueryRowContext(ctx, `
SELECT id, company_id, monthly_income, monthly_target, reserve_fund, energy_cost_diff, unpaid_invoices, captured_at
FROM financial_snapshots
WHERE company_id = $1
ORDER BY captured_at DESC
LIMIT 1`, companyID).Scan(
		&snapshot.ID,
		&snapshot.CompanyID,
		&snapshot.MonthlyIncome,
		&snapshot.MonthlyTarget,
		&snapshot.ReserveFund,
		&snapshot.EnergyCostDiff,
		&snapshot.UnpaidInvoices,
		&snapshot.CapturedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Save inserts a snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *portfolio.FinancialSnapshot) error {
	if r == nil || r.db == nil {
		return errors.New("snapshot repo: nil db")
	}
	if snapshot == nil {
		return errors.New("snapshot repo: nil snapshot")
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if snapshot.CapturedAt.IsZero() {
		snapshot.CapturedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO financial_snapshots (id, company_id, monthly_income, monthly_target, reserve_fund, energy_cost_diff, unpaid_invoices, captured_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		snapshot.ID, snapshot.CompanyID, snapshot.MonthlyIncome, snapshot.MonthlyTarget,
		snapshot.ReserveFund, snapshot.EnergyCostDiff, snapshot.UnpaidInvoices, snapshot.CapturedAt)
	return err
}
