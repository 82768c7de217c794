package portfolio

import (
	"context"
	"time"
)

// FinancialSnapshot is a point-in-time read of the company cash position.
// Snapshots are immutable once captured; corrections are new snapshots.
type FinancialSnapshot struct {
	ID             string
	CompanyID      string
	MonthlyIncome  float64
	MonthlyTarget  float64
	ReserveFund    float64
	EnergyCostDiff float64
	UnpaidInvoices int
	CapturedAt     time.Time
}

// Validate checks snapshot invariants.
func (s FinancialSnapshot) Validate() error {
	if s.CompanyID == "" {
		return ErrEmptyCompanyID
	}
	if s.MonthlyTarget <= 0 {
		return ErrNonPositiveTarget
	}
	if s.ReserveFund < 0 || s.MonthlyIncome < 0 {
		return ErrNegativeCost
	}
	if s.UnpaidInvoices < 0 {
		return ErrInvalidInvoiceCount
	}
	return nil
}

// SnapshotRepository manages financial snapshots, append-only.
type SnapshotRepository interface {
	Latest(ctx context.Context, companyID string) (*FinancialSnapshot, error)
	Save(ctx context.Context, snapshot *FinancialSnapshot) error
}
