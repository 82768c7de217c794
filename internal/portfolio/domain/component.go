package portfolio

import (
	"context"
	"time"
)

// Component represents a building component tracked in the long-term plan,
// e.g. roof, facade, windows, heating. Components are never deleted; they are
// archived instead so renovation history stays intact.
type Component struct {
	ID                    string
	CompanyID             string
	Name                  string
	Category              string
	InstalledYear         int
	ExpectedLifespanYears int
	UnitCostPerArea       float64
	Archived              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Validate checks component invariants.
func (c Component) Validate() error {
	if c.ID == "" {
		return ErrEmptyComponentID
	}
	if c.CompanyID == "" {
		return ErrEmptyCompanyID
	}
	if c.Name == "" {
		return ErrEmptyComponentName
	}
	if c.ExpectedLifespanYears <= 0 {
		return ErrInvalidLifespan
	}
	if c.UnitCostPerArea < 0 {
		return ErrNegativeCost
	}
	return nil
}

// ComponentRepository manages component persistence.
type ComponentRepository interface {
	Get(ctx context.Context, id string) (*Component, error)
	ListByCompany(ctx context.Context, companyID string) ([]Component, error)
	Save(ctx context.Context, component *Component) error
	Archive(ctx context.Context, id string) error
}
