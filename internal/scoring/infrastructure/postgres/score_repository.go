package postgres

import (
	"context"
	"database/sql"
	"errors"

	scoring "taloyhtio-cloud/internal/scoring/domain"
)

// ScoreRepository persists composite scores in Postgres. The history table
// is append-only; the summary table holds the live score per company.
type ScoreRepository struct {
	db *sql.DB
}

// NewScoreRepository constructs a repository.
func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// SaveScore appends the history row and refreshes the live summary in one
// transaction, so the series and the summary update together or not at all.
func (r *ScoreRepository) SaveScore(ctx context.Context, score scoring.CompositeScore) error {
	if r == nil || r.db == nil {
		return errors.New("score repo: nil db")
	}
	if score.CompanyID == "" {
		return errors.New("score repo: empty company id")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO company_scores (company_id, total, technical, financial, admin, computed_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
		score.CompanyID, score.Total, score.Technical, score.Financial, score.Admin, score.ComputedAt); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO company_score_summary (company_id, total, technical, financial, admin, computed_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (company_id) DO UPDATE SET
	total = EXCLUDED.total,
	technical = EXCLUDED.technical,
	financial = EXCLUDED.financial,
	admin = EXCLUDED.admin,
	computed_at = EXCLUDED.computed_at`,
		score.CompanyID, score.Total, score.Technical, score.Financial, score.Admin, score.ComputedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Latest returns the live summary score.
func (r *ScoreRepository) Latest(ctx context.Context, companyID string) (*scoring.CompositeScore, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("score repo: nil db")
	}

	var score scoring.CompositeScore
	err := r.db.QueryRowContext(ctx, `
SELECT company_id, total, technical, financial, admin, computed_at
FROM company_score_summary
WHERE company_id = $1
LIMIT 1`, companyID).Scan(
		&score.CompanyID,
		&score.Total,
		&score.Technical,
		&score.Financial,
		&score.Admin,
		&score.ComputedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// History returns the newest score entries, most recent first.
func (r *ScoreRepository) History(ctx context.Context, companyID string, limit int) ([]scoring.CompositeScore, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("score repo: nil db")
	}
	if limit <= 0 {
		limit = 24
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT company_id, total, technical, financial, admin, computed_at
FROM company_scores
WHERE company_id = $1
ORDER BY computed_at DESC
LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []scoring.CompositeScore
	for rows.Next() {
		var score scoring.CompositeScore
		if err := rows.Scan(
			&score.CompanyID,
			&score.Total,
			&score.Technical,
			&score.Financial,
			&score.Admin,
			&score.ComputedAt,
		); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
