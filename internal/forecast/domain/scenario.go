package forecast

import (
	"errors"
	"math"
)

const (
	StrategyReactive    = "reactive"
	StrategyBalanced    = "balanced"
	StrategyProgressive = "progressive"

	// DefaultHorizonYears is the default simulation span.
	DefaultHorizonYears = 20
)

// StrategyConfig tunes one strategic posture. The investment factor is the
// total proactive capital expressed as a multiple of the base annual
// operating cost, spread evenly over the front-load years. The savings rate
// is the share of operating cost avoided once the programme is fully
// invested; before that the saving ramps with the invested fraction.
type StrategyConfig struct {
	Label            string  `yaml:"label"`
	InvestmentFactor float64 `yaml:"investment_factor"`
	FrontLoadYears   int     `yaml:"front_load_years"`
	SavingsRate      float64 `yaml:"savings_rate"`
	Sustainability   int     `yaml:"sustainability"`
}

// DefaultStrategyConfigs returns the three production postures. Progressive
// front-loads a larger programme and therefore rises steepest early, then
// flattens once savings offset the spend.
func DefaultStrategyConfigs() map[string]StrategyConfig {
	return map[string]StrategyConfig{
		StrategyReactive: {
			Label:          "Reactive",
			Sustainability: 20,
		},
		StrategyBalanced: {
			Label:            "Balanced",
			InvestmentFactor: 2.0,
			FrontLoadYears:   10,
			SavingsRate:      0.25,
			Sustainability:   55,
		},
		StrategyProgressive: {
			Label:            "Progressive",
			InvestmentFactor: 3.0,
			FrontLoadYears:   5,
			SavingsRate:      0.40,
			Sustainability:   85,
		},
	}
}

// SimulationInput drives one strategy path. All strategies must share the
// same inflation assumption so the curves stay comparable.
type SimulationInput struct {
	BaseAnnualCost float64
	TotalAreaM2    float64
	HorizonYears   int
	Inflation      float64
}

// Validate checks simulation invariants.
func (in SimulationInput) Validate() error {
	if in.BaseAnnualCost <= 0 {
		return errors.New("forecast: base annual cost must be positive")
	}
	if in.TotalAreaM2 <= 0 {
		return errors.New("forecast: total area must be positive")
	}
	if in.HorizonYears <= 0 {
		return errors.New("forecast: horizon must be positive")
	}
	return nil
}

// YearCost is one point of a cumulative cost curve.
type YearCost struct {
	Year       int     `json:"year"`
	Annual     float64 `json:"annual"`
	Cumulative float64 `json:"cumulative"`
}

// PathSummary condenses one strategy path for dashboards.
type PathSummary struct {
	Label               string  `json:"label"`
	MonthlyFeeStart     float64 `json:"monthly_fee_per_m2_start"`
	MonthlyFeeHorizon   float64 `json:"monthly_fee_per_m2_horizon"`
	TotalCostAtHorizon  float64 `json:"total_cost_at_horizon"`
	SustainabilityScore int     `json:"sustainability_score"`
}

// StrategyPath is the simulated cost trajectory of one posture.
type StrategyPath struct {
	Strategy string      `json:"strategy"`
	Years    []YearCost  `json:"years"`
	Summary  PathSummary `json:"summary"`
}

// Simulate produces the year-by-year cumulative cost curve for one strategy.
//
// Reactive postures carry no proactive investment and compound the operating
// cost with inflation. Invested postures add their programme spend during the
// front-load years and earn an operating saving that ramps with the invested
// fraction.
func Simulate(strategy string, config StrategyConfig, in SimulationInput) (StrategyPath, error) {
	if err := in.Validate(); err != nil {
		return StrategyPath{}, err
	}

	years := make([]YearCost, 0, in.HorizonYears)
	cumulative := 0.0
	var firstAnnual, lastAnnual float64

	for year := 1; year <= in.HorizonYears; year++ {
		inflator := math.Pow(1+in.Inflation, float64(year))
		operating := in.BaseAnnualCost * inflator

		invest := 0.0
		investedFraction := 0.0
		if config.FrontLoadYears > 0 && config.InvestmentFactor > 0 {
			if year <= config.FrontLoadYears {
				invest = in.BaseAnnualCost * config.InvestmentFactor / float64(config.FrontLoadYears) * inflator
			}
			investedFraction = math.Min(1, float64(year)/float64(config.FrontLoadYears))
		}

		saving := operating * config.SavingsRate * investedFraction
		annual := operating - saving + invest
		cumulative += annual

		if year == 1 {
			firstAnnual = annual
		}
		lastAnnual = annual
		years = append(years, YearCost{Year: year, Annual: annual, Cumulative: cumulative})
	}

	return StrategyPath{
		Strategy: strategy,
		Years:    years,
		Summary: PathSummary{
			Label:               config.Label,
			MonthlyFeeStart:     firstAnnual / 12 / in.TotalAreaM2,
			MonthlyFeeHorizon:   lastAnnual / 12 / in.TotalAreaM2,
			TotalCostAtHorizon:  cumulative,
			SustainabilityScore: config.Sustainability,
		},
	}, nil
}

// SimulateAll runs the reactive, balanced and progressive postures with a
// shared input and returns them in that order.
func SimulateAll(configs map[string]StrategyConfig, in SimulationInput) ([]StrategyPath, error) {
	order := []string{StrategyReactive, StrategyBalanced, StrategyProgressive}
	defaults := DefaultStrategyConfigs()

	paths := make([]StrategyPath, 0, len(order))
	for _, strategy := range order {
		config, ok := configs[strategy]
		if !ok {
			config = defaults[strategy]
		}
		path, err := Simulate(strategy, config, in)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
