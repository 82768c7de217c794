package postgres

import (
	"context"
	"errors"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// ObservationRepository is a Postgres implementation for observations.
type ObservationRepository struct {
	db DBTX
}

// NewObservationRepository constructs a repository.
func NewObservationRepository(db DBTX) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// ListOpen lists open observations of one company.
func (r *ObservationRepository) ListOpen(ctx context.Context, companyID string) ([]portfolio.Observation, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("observation repo: nil db")
	}
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, company_id, severity, status, title, created_at, updated_at
FROM observations
WHERE company_id = $1 AND status = 'open'
ORDER BY severity, created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []portfolio.Observation
	for rows.Next() {
		var observation portfolio.Observation
		if err := rows.Scan(
			&observation.ID,
			&observation.CompanyID,
			&observation.Severity,
			&observation.Status,
			&observation.Title,
			&observation.CreatedAt,
			&observation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		observations = append(observations, observation)
	}
	return observations, rows.Err()
}

// Save upserts an observation.
func (r *ObservationRepository) Save(ctx context.Context, observation *portfolio.Observation) error {
	if r == nil || r.db == nil {
		return errors.New("observation repo: nil db")
	}
	if observation == nil {
		return errors.New("observation repo: nil observation")
	}
	if err := observation.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO observations (id, company_id, severity, status, title, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
ON CONFLICT (id) DO UPDATE SET
	severity = EXCLUDED.severity,
	status = EXCLUDED.status,
	title = EXCLUDED.title,
	updated_at = EXCLUDED.updated_at`,
		observation.ID, observation.CompanyID, observation.Severity, observation.Status, observation.Title, now)
	return err
}

// Resolve marks an observation resolved.
func (r *ObservationRepository) Resolve(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("observation repo: nil db")
	}
	if id == "" {
		return errors.New("observation repo: empty id")
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE observations SET status = 'resolved', updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}
