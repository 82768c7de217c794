package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// RenovationRepository is a Postgres implementation for renovation records
// and their assessments.
type RenovationRepository struct {
	db DBTX
}

// NewRenovationRepository constructs a repository.
func NewRenovationRepository(db DBTX) *RenovationRepository {
	return &RenovationRepository{db: db}
}

const renovationColumns = `id, company_id, component_id, status, planned_year, year_done, cost, created_at, updated_at`

// Get loads a renovation record by id.
func (r *RenovationRepository) Get(ctx context.Context, id string) (*portfolio.RenovationRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("renovation repo: nil db")
	}
	if id == "" {
		return nil, portfolio.ErrEmptyRenovationID
	}

	row := r.db.QueryRowContext(ctx, `
SELECT `+renovationColumns+`
FROM renovations
WHERE id = $1
LIMIT 1`, id)
	record, err := scanRenovation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListByComponent lists the renovation history of one component.
func (r *RenovationRepository) ListByComponent(ctx context.Context, componentID string) ([]portfolio.RenovationRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("renovation repo: nil db")
	}
	if componentID == "" {
		return nil, portfolio.ErrEmptyComponentID
	}
	return r.list(ctx, `
SELECT `+renovationColumns+`
FROM renovations
WHERE component_id = $1
ORDER BY created_at, id`, componentID)
}

// ListPlanned lists all planned renovations of one company.
func (r *RenovationRepository) ListPlanned(ctx context.Context, companyID string) ([]portfolio.RenovationRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("renovation repo: nil db")
	}
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	return r.list(ctx, `
SELECT `+renovationColumns+`
FROM renovations
WHERE company_id = $1 AND status = 'planned'
ORDER BY planned_year, id`, companyID)
}

// Save upserts a renovation record.
func (r *RenovationRepository) Save(ctx context.Context, record *portfolio.RenovationRecord) error {
	if r == nil || r.db == nil {
		return errors.New("renovation repo: nil db")
	}
	if record == nil {
		return errors.New("renovation repo: nil record")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO renovations (id, company_id, component_id, status, planned_year, year_done, cost, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
ON CONFLICT (id) DO UPDATE SET
	status = EXCLUDED.status,
	planned_year = EXCLUDED.planned_year,
	year_done = EXCLUDED.year_done,
	cost = EXCLUDED.cost,
	updated_at = EXCLUDED.updated_at`,
		record.ID, record.CompanyID, record.ComponentID, record.Status,
		record.PlannedYear, record.YearDone, record.Cost, now)
	return err
}

// ListAssessments lists the assessments of one renovation.
func (r *RenovationRepository) ListAssessments(ctx context.Context, renovationID string) ([]portfolio.Assessment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("renovation repo: nil db")
	}
	if renovationID == "" {
		return nil, portfolio.ErrEmptyRenovationID
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, renovation_id, severity_grade, note, created_at
FROM assessments
WHERE renovation_id = $1
ORDER BY created_at, id`, renovationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []portfolio.Assessment
	for rows.Next() {
		var assessment portfolio.Assessment
		if err := rows.Scan(
			&assessment.ID,
			&assessment.RenovationID,
			&assessment.SeverityGrade,
			&assessment.Note,
			&assessment.CreatedAt,
		); err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}
	return assessments, rows.Err()
}

// SaveAssessment inserts an assessment. Assessments are append-only.
func (r *RenovationRepository) SaveAssessment(ctx context.Context, assessment *portfolio.Assessment) error {
	if r == nil || r.db == nil {
		return errors.New("renovation repo: nil db")
	}
	if assessment == nil {
		return errors.New("renovation repo: nil assessment")
	}
	if err := assessment.Validate(); err != nil {
		return err
	}
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO assessments (id, renovation_id, severity_grade, note, created_at)
VALUES ($1,$2,$3,$4,$5)`,
		assessment.ID, assessment.RenovationID, assessment.SeverityGrade, assessment.Note, assessment.CreatedAt)
	return err
}

func (r *RenovationRepository) list(ctx context.Context, query string, arg any) ([]portfolio.RenovationRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []portfolio.RenovationRecord
	for rows.Next() {
		record, err := scanRenovation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanRenovation(row rowScanner) (*portfolio.RenovationRecord, error) {
	var record portfolio.RenovationRecord
	err := row.Scan(
		&record.ID,
		&record.CompanyID,
		&record.ComponentID,
		&record.Status,
		&record.PlannedYear,
		&record.YearDone,
		&record.Cost,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
