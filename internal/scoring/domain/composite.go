package scoring

import (
	"math"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// CompositeScore merges the three sub-scores into the company health score.
// Scores are persisted as an append-only history; entries are never mutated.
type CompositeScore struct {
	CompanyID  string    `json:"company_id"`
	Total      int       `json:"total"`
	Technical  int       `json:"technical"`
	Financial  int       `json:"financial"`
	Admin      int       `json:"admin"`
	ComputedAt time.Time `json:"computed_at"`
}

// AdminScorer supplies the administrative compliance pillar. It is kept
// pluggable; meeting cadence and document compliance live outside this
// module.
type AdminScorer interface {
	AdminScore(companyID string) int
}

// ConstantAdminScore is the default admin pillar.
type ConstantAdminScore int

// AdminScore returns the constant.
func (c ConstantAdminScore) AdminScore(string) int { return int(c) }

// DefaultAdminScore is used until a compliance source is wired in.
const DefaultAdminScore = 70

// TechnicalScore deducts a penalty per open observation from 100, floored at
// zero. Severity 1 is the most severe finding.
func TechnicalScore(observations []portfolio.Observation) int {
	score := 100
	for _, observation := range observations {
		if observation.Status != portfolio.ObservationStatusOpen {
			continue
		}
		switch observation.Severity {
		case 1:
			score -= 10
		case 2:
			score -= 5
		default:
			score -= 2
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// FinancialScore derives a liquidity score from the reserve-to-monthly-target
// ratio, with a bonus for a clean invoice ledger.
func FinancialScore(snapshot portfolio.FinancialSnapshot) (int, error) {
	if snapshot.MonthlyTarget <= 0 {
		return 0, portfolio.ErrNonPositiveTarget
	}
	ratio := snapshot.ReserveFund / snapshot.MonthlyTarget
	score := int(math.Round(ratio*30 + 20))
	if score > 100 {
		score = 100
	}
	if snapshot.UnpaidInvoices == 0 {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// Aggregate computes the composite health score as the unweighted mean of the
// three pillars, rounded to the nearest integer. This is intentionally a
// different computation from the investment grade blend.
func Aggregate(companyID string, technical, financial, admin int, at time.Time) CompositeScore {
	total := int(math.Round(float64(technical+financial+admin) / 3))
	return CompositeScore{
		CompanyID:  companyID,
		Total:      total,
		Technical:  technical,
		Financial:  financial,
		Admin:      admin,
		ComputedAt: at,
	}
}
