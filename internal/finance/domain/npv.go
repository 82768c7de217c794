package finance

import "math"

const (
	// ScenarioGSHP is a ground source heat pump retrofit.
	ScenarioGSHP = "gshp"
	// ScenarioSolar is a rooftop solar installation.
	ScenarioSolar = "solar"
	// ScenarioExhaustHeatRecovery recovers heat from exhaust ventilation.
	ScenarioExhaustHeatRecovery = "exhaust_heat_recovery"

	// PaybackSentinelYears caps the simple payback when savings are zero.
	PaybackSentinelYears = 99

	// DefaultROIHorizonYears is the default NPV horizon.
	DefaultROIHorizonYears = 10
)

// InvestmentScenario describes one energy investment candidate.
type InvestmentScenario struct {
	Type           string  `json:"type"`
	InitialCost    float64 `json:"initial_cost"`
	AnnualSavings  float64 `json:"annual_savings"`
	LifespanYears  int     `json:"lifespan_years"`
	EnergySavedKwh float64 `json:"energy_saved_kwh"`
}

// Validate checks scenario invariants.
func (s InvestmentScenario) Validate() error {
	if s.InitialCost <= 0 {
		return ErrNonPositivePrincipal
	}
	if s.AnnualSavings < 0 {
		return ErrNegativeSavings
	}
	return nil
}

// ROIAssumptions parameterize the NPV model. Energy price inflation is a
// separate rate from general inflation and from the discount rate.
type ROIAssumptions struct {
	DiscountRate         float64 `json:"discount_rate"`
	EnergyPriceInflation float64 `json:"energy_price_inflation"`
	HorizonYears         int     `json:"horizon_years"`
}

// ROIResult summarizes the financial case for an investment scenario.
type ROIResult struct {
	NPV           float64 `json:"npv"`
	PaybackYears  float64 `json:"payback_years"`
	TotalSavings  float64 `json:"total_savings"`
	HorizonYears  int     `json:"horizon_years"`
	AnnualSavings float64 `json:"first_year_savings"`
}

// ProjectROI computes net present value over the horizon, with the yearly
// saving inflated by energy price inflation, plus the simple undiscounted
// payback period.
func ProjectROI(scenario InvestmentScenario, assumptions ROIAssumptions) (ROIResult, error) {
	if err := scenario.Validate(); err != nil {
		return ROIResult{}, err
	}
	horizon := assumptions.HorizonYears
	if horizon <= 0 {
		horizon = DefaultROIHorizonYears
	}

	npv := -scenario.InitialCost
	totalSavings := 0.0
	for year := 1; year <= horizon; year++ {
		saving := scenario.AnnualSavings * math.Pow(1+assumptions.EnergyPriceInflation, float64(year-1))
		totalSavings += saving
		npv += saving / math.Pow(1+assumptions.DiscountRate, float64(year))
	}

	payback := float64(PaybackSentinelYears)
	if scenario.AnnualSavings > 0 {
		payback = scenario.InitialCost / scenario.AnnualSavings
		if payback > PaybackSentinelYears {
			payback = PaybackSentinelYears
		}
	}

	return ROIResult{
		NPV:           npv,
		PaybackYears:  payback,
		TotalSavings:  totalSavings,
		HorizonYears:  horizon,
		AnnualSavings: scenario.AnnualSavings,
	}, nil
}
