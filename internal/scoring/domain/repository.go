package scoring

import "context"

// ScoreRepository persists composite scores. SaveScore must append the
// history row and update the live summary in one transaction so the series
// and the summary never diverge.
type ScoreRepository interface {
	SaveScore(ctx context.Context, score CompositeScore) error
	Latest(ctx context.Context, companyID string) (*CompositeScore, error)
	History(ctx context.Context, companyID string, limit int) ([]CompositeScore, error)
}
