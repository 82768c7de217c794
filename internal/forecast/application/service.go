package application

import (
	"context"
	"errors"

	forecast "taloyhtio-cloud/internal/forecast/domain"
	planning "taloyhtio-cloud/internal/planning/domain"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// CompanySource loads the company profile.
type CompanySource interface {
	Get(ctx context.Context, id string) (*portfolio.Company, error)
}

// SnapshotSource loads the latest financial snapshot.
type SnapshotSource interface {
	Latest(ctx context.Context, companyID string) (*portfolio.FinancialSnapshot, error)
}

// ForecastService simulates multi-decade cost paths for the three postures.
type ForecastService struct {
	companies  CompanySource
	snapshots  SnapshotSource
	strategies map[string]forecast.StrategyConfig
	rates      planning.Rates
}

// NewForecastService constructs the service.
func NewForecastService(companies CompanySource, snapshots SnapshotSource, strategies map[string]forecast.StrategyConfig, rates planning.Rates) (*ForecastService, error) {
	if companies == nil {
		return nil, errors.New("forecast service: nil company source")
	}
	if snapshots == nil {
		return nil, errors.New("forecast service: nil snapshot source")
	}
	if len(strategies) == 0 {
		strategies = forecast.DefaultStrategyConfigs()
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &ForecastService{
		companies:  companies,
		snapshots:  snapshots,
		strategies: strategies,
		rates:      rates,
	}, nil
}

// Run simulates all three strategies over the horizon. The base annual
// operating cost is taken from the latest financial snapshot target.
func (s *ForecastService) Run(ctx context.Context, companyID string, horizonYears int) ([]forecast.StrategyPath, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	if horizonYears <= 0 {
		horizonYears = forecast.DefaultHorizonYears
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

	snapshot, err := s.snapshots.Latest(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, portfolio.ErrNotFound
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return forecast.SimulateAll(s.strategies, forecast.SimulationInput{
		BaseAnnualCost: snapshot.MonthlyTarget * 12,
		TotalAreaM2:    company.TotalAreaM2,
		HorizonYears:   horizonYears,
		Inflation:      s.rates.Inflation,
	})
}
