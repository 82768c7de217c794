package planning

import "errors"

// Rates carries the three inflation-like rates used across the engine plus
// the discount rate. General inflation, the construction cost index and
// energy price inflation model different things and are never interchanged.
type Rates struct {
	Inflation             float64 `yaml:"inflation"`
	ConstructionCostIndex float64 `yaml:"construction_cost_index"`
	EnergyPriceInflation  float64 `yaml:"energy_price_inflation"`
	DiscountRate          float64 `yaml:"discount_rate"`
}

// DefaultRates returns production defaults.
func DefaultRates() Rates {
	return Rates{
		Inflation:             0.025,
		ConstructionCostIndex: 1.035,
		EnergyPriceInflation:  0.03,
		DiscountRate:          0.05,
	}
}

// Validate checks rate sanity.
func (r Rates) Validate() error {
	if r.Inflation < -1 {
		return errors.New("rates: inflation below -100%")
	}
	if r.ConstructionCostIndex <= 0 {
		return errors.New("rates: construction cost index must be positive")
	}
	if r.EnergyPriceInflation < -1 {
		return errors.New("rates: energy price inflation below -100%")
	}
	if r.DiscountRate < 0 {
		return errors.New("rates: negative discount rate")
	}
	return nil
}
