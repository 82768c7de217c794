package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// ComponentRepository is a Postgres implementation for building components.
type ComponentRepository struct {
	db DBTX
}

// NewComponentRepository constructs a repository.
func NewComponentRepository(db DBTX) *ComponentRepository {
	return &ComponentRepository{db: db}
}

const componentColumns = `id, company_id, name, category, installed_year, expected_lifespan_years, unit_cost_per_area, archived, created_at, updated_at`

// Get loads a component by id.
func (r *ComponentRepository) Get(ctx context.Context, id string) (*portfolio.Component, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("component repo: nil db")
	}
	if id == "" {
		return nil, errors.New("component repo: empty id")
	}

	row := r.db.QueryRowContext(ctx, `
SELECT `+componentColumns+`
FROM components
WHERE id = $1
LIMIT 1`, id)
	component, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return component, nil
}

// ListByCompany lists all components of one company, stable order.
func (r *ComponentRepository) ListByCompany(ctx context.Context, companyID string) ([]portfolio.Component, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("component repo: nil db")
	}
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+componentColumns+`
FROM components
WHERE company_id = $1
ORDER BY name, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []portfolio.Component
	for rows.Next() {
		component, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, *component)
	}
	return components, rows.Err()
}

// Save upserts a component.
func (r *ComponentRepository) Save(ctx context.Context, component *portfolio.Component) error {
	if r == nil || r.db == nil {
		return errors.New("component repo: nil db")
	}
	if component == nil {
		return errors.New("component repo: nil component")
	}
	if err := component.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO components (id, company_id, name, category, installed_year, expected_lifespan_years, unit_cost_per_area, archived, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	category = EXCLUDED.category,
	installed_year = EXCLUDED.installed_year,
	expected_lifespan_years = EXCLUDED.expected_lifespan_years,
	unit_cost_per_area = EXCLUDED.unit_cost_per_area,
	archived = EXCLUDED.archived,
	updated_at = EXCLUDED.updated_at`,
		component.ID, component.CompanyID, component.Name, component.Category,
		component.InstalledYear, component.ExpectedLifespanYears, component.UnitCostPerArea,
		component.Archived, now)
	return err
}

// Archive marks a component archived. Components are never deleted.
func (r *ComponentRepository) Archive(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("component repo: nil db")
	}
	if id == "" {
		return errors.New("component repo: empty id")
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE components SET archived = TRUE, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (*portfolio.Component, error) {
	var component portfolio.Component
	err := row.Scan(
		&component.ID,
		&component.CompanyID,
		&component.Name,
		&component.Category,
		&component.InstalledYear,
		&component.ExpectedLifespanYears,
		&component.UnitCostPerArea,
		&component.Archived,
		&component.CreatedAt,
		&component.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &component, nil
}
