package application

import (
	"context"
	"errors"

	finance "taloyhtio-cloud/internal/finance/domain"
	planning "taloyhtio-cloud/internal/planning/domain"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// CompanySource loads the company profile for per-share derivations.
type CompanySource interface {
	Get(ctx context.Context, id string) (*portfolio.Company, error)
}

// FundingOptions pairs the loan and cash alternatives for one cost.
type FundingOptions struct {
	Cost float64             `json:"cost"`
	Loan finance.FundingPlan `json:"loan"`
	Cash finance.FundingPlan `json:"cash"`
}

// SavingPlan is a sinking fund schedule towards a future target.
type SavingPlan struct {
	Target         float64 `json:"target"`
	Months         int     `json:"months"`
	MonthlyTotal   float64 `json:"monthly_total"`
	MonthlyPerUnit float64 `json:"monthly_per_share"`
}

// FinancingService computes funding alternatives for renovation costs.
type FinancingService struct {
	companies CompanySource
	rates     planning.Rates
}

// NewFinancingService constructs the service.
func NewFinancingService(companies CompanySource, rates planning.Rates) (*FinancingService, error) {
	if companies == nil {
		return nil, errors.New("financing service: nil company source")
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &FinancingService{companies: companies, rates: rates}, nil
}

// Options returns the loan annuity and the plain cash collection for a cost.
// Both are always computed; the caller picks one.
func (s *FinancingService) Options(ctx context.Context, companyID string, cost float64, annualRate float64, termYears int) (*FundingOptions, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}

	loan, err := finance.LoanFunding(finance.LoanTerms{
		Principal:  cost,
		AnnualRate: annualRate,
		TermYears:  termYears,
	}, company.TotalShares, company.TotalAreaM2)
	if err != nil {
		return nil, err
	}

	cash, err := finance.CashFunding(cost, company.TotalShares, company.TotalAreaM2)
	if err != nil {
		return nil, err
	}

	return &FundingOptions{Cost: cost, Loan: loan, Cash: cash}, nil
}

// SavingPlan returns the monthly sinking fund contribution needed to reach a
// target before the given number of months has passed.
func (s *FinancingService) SavingPlan(ctx context.Context, companyID string, target float64, annualRate float64, months int) (*SavingPlan, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	monthly, err := finance.SavingRate(target, annualRate, months)
	if err != nil {
		return nil, err
	}
	return &SavingPlan{
		Target:         target,
		Months:         months,
		MonthlyTotal:   monthly,
		MonthlyPerUnit: monthly / float64(company.TotalShares),
	}, nil
}

// InvestmentROI evaluates an energy investment scenario with the engine's
// discount rate and energy price inflation.
func (s *FinancingService) InvestmentROI(scenario finance.InvestmentScenario) (finance.ROIResult, error) {
	return finance.ProjectROI(scenario, finance.ROIAssumptions{
		DiscountRate:         s.rates.DiscountRate,
		EnergyPriceInflation: s.rates.EnergyPriceInflation,
	})
}

func (s *FinancingService) company(ctx context.Context, companyID string) (*portfolio.Company, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, portfolio.ErrNotFound
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	return company, nil
}
