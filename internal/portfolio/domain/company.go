package portfolio

import (
	"context"
	"errors"
	"time"
)

// Company represents a housing company whose building stock is managed here.
// All portfolio records are scoped to exactly one company.
type Company struct {
	ID          string
	Name        string
	BuildYear   int
	TotalShares int
	TotalAreaM2 float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks company invariants.
func (c Company) Validate() error {
	if c.ID == "" {
		return errors.New("company: empty id")
	}
	if c.Name == "" {
		return errors.New("company: empty name")
	}
	if c.TotalShares <= 0 {
		return ErrNonPositiveShares
	}
	if c.TotalAreaM2 <= 0 {
		return ErrNonPositiveArea
	}
	return nil
}

// CompanyRepository manages company persistence.
type CompanyRepository interface {
	Get(ctx context.Context, id string) (*Company, error)
	Save(ctx context.Context, company *Company) error
}
