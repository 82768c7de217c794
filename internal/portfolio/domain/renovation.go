package portfolio

import (
	"context"
	"time"
)

const (
	RenovationStatusPlanned   = "planned"
	RenovationStatusCompleted = "completed"
)

// RenovationRecord is either a planned or a completed renovation of one
// component. Exactly one of PlannedYear and YearDone carries meaning,
// selected by Status. A record moves planned -> completed exactly once.
type RenovationRecord struct {
	ID          string
	CompanyID   string
	ComponentID string
	Status      string
	PlannedYear int
	YearDone    int
	Cost        float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks renovation invariants.
func (r RenovationRecord) Validate() error {
	if r.ID == "" {
		return ErrEmptyRenovationID
	}
	if r.CompanyID == "" {
		return ErrEmptyCompanyID
	}
	if r.ComponentID == "" {
		return ErrEmptyComponentID
	}
	if r.Cost < 0 {
		return ErrNegativeCost
	}
	switch r.Status {
	case RenovationStatusPlanned:
		if r.PlannedYear == 0 || r.YearDone != 0 {
			return ErrYearMismatch
		}
	case RenovationStatusCompleted:
		if r.YearDone == 0 || r.PlannedYear != 0 {
			return ErrYearMismatch
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

// Complete transitions a planned record to completed in the given year.
// The planned year is retired in favour of the completion year.
func (r *RenovationRecord) Complete(year int, cost float64) error {
	if r.Status != RenovationStatusPlanned {
		return ErrAlreadyCompleted
	}
	if year <= 0 {
		return ErrYearMismatch
	}
	if cost < 0 {
		return ErrNegativeCost
	}
	r.Status = RenovationStatusCompleted
	r.YearDone = year
	r.PlannedYear = 0
	if cost > 0 {
		r.Cost = cost
	}
	return nil
}

// Assessment is an optional severity grading attached to a renovation.
// Grade 1 is the most severe, 4 the least.
type Assessment struct {
	ID            string
	RenovationID  string
	SeverityGrade int
	Note          string
	CreatedAt     time.Time
}

// Validate checks assessment invariants.
func (a Assessment) Validate() error {
	if a.RenovationID == "" {
		return ErrEmptyRenovationID
	}
	if a.SeverityGrade < 1 || a.SeverityGrade > 4 {
		return ErrInvalidSeverity
	}
	return nil
}

// RenovationRepository manages renovation records and their assessments.
type RenovationRepository interface {
	Get(ctx context.Context, id string) (*RenovationRecord, error)
	ListByComponent(ctx context.Context, componentID string) ([]RenovationRecord, error)
	ListPlanned(ctx context.Context, companyID string) ([]RenovationRecord, error)
	Save(ctx context.Context, record *RenovationRecord) error
	ListAssessments(ctx context.Context, renovationID string) ([]Assessment, error)
	SaveAssessment(ctx context.Context, assessment *Assessment) error
}
