package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Service handles portfolio record keeping: components, renovations,
// assessments and financial snapshots.
type Service struct {
	companies    portfolio.CompanyRepository
	components   portfolio.ComponentRepository
	renovations  portfolio.RenovationRepository
	snapshots    portfolio.SnapshotRepository
	observations portfolio.ObservationRepository
	clock        Clock
}

// NewService constructs the service.
func NewService(
	companies portfolio.CompanyRepository,
	components portfolio.ComponentRepository,
	renovations portfolio.RenovationRepository,
	snapshots portfolio.SnapshotRepository,
	observations portfolio.ObservationRepository,
	clock Clock,
) (*Service, error) {
	if companies == nil {
		return nil, errors.New("portfolio service: nil company repository")
	}
	if components == nil {
		return nil, errors.New("portfolio service: nil component repository")
	}
	if renovations == nil {
		return nil, errors.New("portfolio service: nil renovation repository")
	}
	if snapshots == nil {
		return nil, errors.New("portfolio service: nil snapshot repository")
	}
	if observations == nil {
		return nil, errors.New("portfolio service: nil observation repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		companies:    companies,
		components:   components,
		renovations:  renovations,
		snapshots:    snapshots,
		observations: observations,
		clock:        clock,
	}, nil
}

// RegisterComponent stores a new component.
func (s *Service) RegisterComponent(ctx context.Context, component portfolio.Component) (*portfolio.Component, error) {
	if component.ID == "" {
		component.ID = newID("cmp")
	}
	if err := component.Validate(); err != nil {
		return nil, err
	}
	if err := s.components.Save(ctx, &component); err != nil {
		return nil, err
	}
	return &component, nil
}

// ListComponents lists the components of one company.
func (s *Service) ListComponents(ctx context.Context, companyID string) ([]portfolio.Component, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	return s.components.ListByCompany(ctx, companyID)
}

// PlanRenovation records a planned renovation for a component.
func (s *Service) PlanRenovation(ctx context.Context, companyID, componentID string, plannedYear int, cost float64) (*portfolio.RenovationRecord, error) {
	component, err := s.components.Get(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, portfolio.ErrNotFound
	}
	if component.CompanyID != companyID {
		return nil, portfolio.ErrNotFound
	}

	record := portfolio.RenovationRecord{
		ID:          newID("ren"),
		CompanyID:   companyID,
		ComponentID: componentID,
		Status:      portfolio.RenovationStatusPlanned,
		PlannedYear: plannedYear,
		Cost:        cost,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.renovations.Save(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CompleteRenovation transitions a planned renovation to completed and
// resets the component installation year to the completion year.
func (s *Service) CompleteRenovation(ctx context.Context, renovationID string, year int, cost float64) (*portfolio.RenovationRecord, error) {
	record, err := s.renovations.Get(ctx, renovationID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, portfolio.ErrNotFound
	}
	if err := record.Complete(year, cost); err != nil {
		return nil, err
	}
	if err := s.renovations.Save(ctx, record); err != nil {
		return nil, err
	}

	component, err := s.components.Get(ctx, record.ComponentID)
	if err != nil {
		return nil, err
	}
	if component != nil {
		component.InstalledYear = year
		if err := s.components.Save(ctx, component); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// AttachAssessment appends a severity assessment to a renovation.
func (s *Service) AttachAssessment(ctx context.Context, renovationID string, severityGrade int, note string) (*portfolio.Assessment, error) {
	record, err := s.renovations.Get(ctx, renovationID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, portfolio.ErrNotFound
	}

	assessment := portfolio.Assessment{
		ID:            newID("ass"),
		RenovationID:  renovationID,
		SeverityGrade: severityGrade,
		Note:          note,
		CreatedAt:     s.clock.Now(),
	}
	if err := assessment.Validate(); err != nil {
		return nil, err
	}
	if err := s.renovations.SaveAssessment(ctx, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// CaptureSnapshot stores a point-in-time financial snapshot.
func (s *Service) CaptureSnapshot(ctx context.Context, snapshot portfolio.FinancialSnapshot) (*portfolio.FinancialSnapshot, error) {
	if snapshot.ID == "" {
		snapshot.ID = newID("fin")
	}
	if snapshot.CapturedAt.IsZero() {
		snapshot.CapturedAt = s.clock.Now()
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	if err := s.snapshots.Save(ctx, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// RecordObservation stores a new open technical observation.
func (s *Service) RecordObservation(ctx context.Context, observation portfolio.Observation) (*portfolio.Observation, error) {
	if observation.ID == "" {
		observation.ID = newID("obs")
	}
	if observation.Status == "" {
		observation.Status = portfolio.ObservationStatusOpen
	}
	if err := observation.Validate(); err != nil {
		return nil, err
	}
	if err := s.observations.Save(ctx, &observation); err != nil {
		return nil, err
	}
	return &observation, nil
}

// ListOpenObservations lists the open observations of one company.
func (s *Service) ListOpenObservations(ctx context.Context, companyID string) ([]portfolio.Observation, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	return s.observations.ListOpen(ctx, companyID)
}

// ResolveObservation marks an observation resolved.
func (s *Service) ResolveObservation(ctx context.Context, id string) error {
	if id == "" {
		return portfolio.ErrNotFound
	}
	return s.observations.Resolve(ctx, id)
}

func newID(prefix string) string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return prefix + "-" + hex.EncodeToString(buf)
}
