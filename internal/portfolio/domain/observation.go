package portfolio

import (
	"context"
	"time"
)

const (
	ObservationStatusOpen     = "open"
	ObservationStatusResolved = "resolved"
)

// Observation is a standing technical finding from an inspection, e.g. a
// damp cellar wall. Open observations reduce the technical condition score;
// resolving one is recorded, never deleted.
type Observation struct {
	ID        string
	CompanyID string
	Severity  int
	Status    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks observation invariants.
func (o Observation) Validate() error {
	if o.CompanyID == "" {
		return ErrEmptyCompanyID
	}
	if o.Severity < 1 || o.Severity > 4 {
		return ErrInvalidSeverity
	}
	if o.Status != ObservationStatusOpen && o.Status != ObservationStatusResolved {
		return ErrInvalidStatus
	}
	return nil
}

// ObservationRepository manages observations.
type ObservationRepository interface {
	ListOpen(ctx context.Context, companyID string) ([]Observation, error)
	Save(ctx context.Context, observation *Observation) error
	Resolve(ctx context.Context, id string) error
}
