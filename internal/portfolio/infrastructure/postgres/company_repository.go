package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// CompanyRepository is a Postgres implementation for companies.
type CompanyRepository struct {
	db DBTX
}

// NewCompanyRepository constructs a repository.
func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Get loads a company by id.
func (r *CompanyRepository) Get(ctx context.Context, id string) (*portfolio.Company, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("company repo: nil db")
	}
	if id == "" {
		return nil, errors.New("company repo: empty id")
	}

	var company portfolio.Company
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, build_year, total_shares, total_area_m2, created_at, updated_at
FROM companies
WHERE id = $1
LIMIT 1`, id).Scan(
		&company.ID,
		&company.Name,
		&company.BuildYear,
		&company.TotalShares,
		&company.TotalAreaM2,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Save upserts a company.
func (r *CompanyRepository) Save(ctx context.Context, company *portfolio.Company) error {
	if r == nil || r.db == nil {
		return errors.New("company repo: nil db")
	}
	if company == nil {
		return errors.New("company repo: nil company")
	}
	if err := company.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO companies (id, name, build_year, total_shares, total_area_m2, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	build_year = EXCLUDED.build_year,
	total_shares = EXCLUDED.total_shares,
	total_area_m2 = EXCLUDED.total_area_m2,
	updated_at = EXCLUDED.updated_at`,
		company.ID, company.Name, company.BuildYear, company.TotalShares, company.TotalAreaM2, now)
	return err
}
