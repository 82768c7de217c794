package finance

import "math"

// LoanTerms describes a fixed-rate annuity loan.
type LoanTerms struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
}

// Validate checks loan term invariants.
func (t LoanTerms) Validate() error {
	if t.Principal <= 0 {
		return ErrNonPositivePrincipal
	}
	if t.AnnualRate < 0 {
		return ErrNegativeRate
	}
	if t.TermYears <= 0 {
		return ErrNonPositiveTerm
	}
	return nil
}

// MonthlyPayment returns the fixed monthly annuity payment. A zero rate is
// a straight division of principal over the term.
func MonthlyPayment(terms LoanTerms) (float64, error) {
	if err := terms.Validate(); err != nil {
		return 0, err
	}
	months := float64(terms.TermYears * 12)
	monthlyRate := terms.AnnualRate / 12
	if monthlyRate == 0 {
		return terms.Principal / months, nil
	}
	factor := math.Pow(1+monthlyRate, months)
	return terms.Principal * monthlyRate * factor / (factor - 1), nil
}

// FundingPlan is one way of collecting a renovation cost from shareholders.
type FundingPlan struct {
	Kind           string  `json:"kind"`
	MonthlyTotal   float64 `json:"monthly_total"`
	MonthlyPerUnit float64 `json:"monthly_per_share"`
	MonthlyPerM2   float64 `json:"monthly_per_m2"`
	Months         int     `json:"months"`
}

const (
	FundingKindLoan = "loan"
	FundingKindCash = "cash"
)

// LoanFunding spreads a cost over an annuity loan and derives the per-share
// and per-square-metre financing fee.
func LoanFunding(terms LoanTerms, totalShares int, totalAreaM2 float64) (FundingPlan, error) {
	if totalShares <= 0 {
		return FundingPlan{}, ErrNonPositiveShares
	}
	if totalAreaM2 <= 0 {
		return FundingPlan{}, ErrNonPositiveArea
	}
	payment, err := MonthlyPayment(terms)
	if err != nil {
		return FundingPlan{}, err
	}
	return FundingPlan{
		Kind:           FundingKindLoan,
		MonthlyTotal:   payment,
		MonthlyPerUnit: payment / float64(totalShares),
		MonthlyPerM2:   payment / totalAreaM2,
		Months:         terms.TermYears * 12,
	}, nil
}

// CashFunding spreads a cost evenly over twelve monthly collections. This is
// deliberately simpler than the loan model and carries no interest.
func CashFunding(cost float64, totalShares int, totalAreaM2 float64) (FundingPlan, error) {
	if cost <= 0 {
		return FundingPlan{}, ErrNonPositivePrincipal
	}
	if totalShares <= 0 {
		return FundingPlan{}, ErrNonPositiveShares
	}
	if totalAreaM2 <= 0 {
		return FundingPlan{}, ErrNonPositiveArea
	}
	monthly := cost / 12
	return FundingPlan{
		Kind:           FundingKindCash,
		MonthlyTotal:   monthly,
		MonthlyPerUnit: cost / float64(totalShares) / 12,
		MonthlyPerM2:   monthly / totalAreaM2,
		Months:         12,
	}, nil
}

// SavingRate returns the monthly contribution needed to reach a sinking fund
// target in the given number of months, assuming contributions earn the
// annual rate. A zero rate divides the target evenly.
func SavingRate(target float64, annualRate float64, months int) (float64, error) {
	if target <= 0 {
		return 0, ErrNonPositivePrincipal
	}
	if annualRate < 0 {
		return 0, ErrNegativeRate
	}
	if months <= 0 {
		return 0, ErrNonPositiveTerm
	}
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return target / float64(months), nil
	}
	factor := math.Pow(1+monthlyRate, float64(months))
	return target * monthlyRate / (factor - 1), nil
}
