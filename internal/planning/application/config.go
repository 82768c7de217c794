package application

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	forecast "taloyhtio-cloud/internal/forecast/domain"
	planning "taloyhtio-cloud/internal/planning/domain"
	scoring "taloyhtio-cloud/internal/scoring/domain"
)

// EngineConfig collects every tunable of the planning and forecasting
// engine. All values ship with production defaults and can be overridden
// from a yaml file so tests and tuning never require code changes.
type EngineConfig struct {
	Rates           planning.Rates                     `yaml:"rates"`
	PriorityWeights planning.PriorityWeights           `yaml:"priority_weights"`
	SynergyDiscount float64                            `yaml:"synergy_discount"`
	Pricebook       planning.Pricebook                 `yaml:"pricebook"`
	Strategies      map[string]forecast.StrategyConfig `yaml:"strategies"`
	GradeWeights    scoring.GradeWeights               `yaml:"grade_weights"`
	AdminScore      int                                `yaml:"admin_score"`
	EnergyBaseline  int                                `yaml:"energy_baseline"`
}

// DefaultEngineConfig returns the production parameter set.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Rates:           planning.DefaultRates(),
		PriorityWeights: planning.DefaultPriorityWeights(),
		SynergyDiscount: planning.DefaultSynergyDiscount,
		Pricebook:       planning.DefaultPricebook(),
		Strategies:      forecast.DefaultStrategyConfigs(),
		GradeWeights:    scoring.DefaultGradeWeights(),
		AdminScore:      scoring.DefaultAdminScore,
		EnergyBaseline:  70,
	}
}

// LoadEngineConfig loads engine parameters from yaml or env.
// ENGINE_CONFIG names a yaml file overlaying the defaults; the three rate
// env vars take precedence over both.
func LoadEngineConfig() (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		overlay := EngineConfig{}
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return cfg, err
		}
		cfg = cfg.merge(overlay)
	}

	cfg.Rates.Inflation = getenvFloatDefault("INFLATION_RATE", cfg.Rates.Inflation)
	cfg.Rates.ConstructionCostIndex = getenvFloatDefault("CONSTRUCTION_COST_INDEX", cfg.Rates.ConstructionCostIndex)
	cfg.Rates.EnergyPriceInflation = getenvFloatDefault("ENERGY_PRICE_INFLATION", cfg.Rates.EnergyPriceInflation)
	cfg.Rates.DiscountRate = getenvFloatDefault("DISCOUNT_RATE", cfg.Rates.DiscountRate)

	if err := cfg.Rates.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c EngineConfig) merge(overlay EngineConfig) EngineConfig {
	merged := c
	if overlay.Rates != (planning.Rates{}) {
		merged.Rates = overlay.Rates
	}
	if overlay.PriorityWeights != (planning.PriorityWeights{}) {
		merged.PriorityWeights = overlay.PriorityWeights
	}
	if overlay.SynergyDiscount > 0 {
		merged.SynergyDiscount = overlay.SynergyDiscount
	}
	if len(overlay.Pricebook) > 0 {
		merged.Pricebook = merged.Pricebook.Merge(overlay.Pricebook)
	}
	if len(overlay.Strategies) > 0 {
		strategies := make(map[string]forecast.StrategyConfig, len(merged.Strategies))
		for name, config := range merged.Strategies {
			strategies[name] = config
		}
		for name, config := range overlay.Strategies {
			strategies[name] = config
		}
		merged.Strategies = strategies
	}
	if overlay.GradeWeights != (scoring.GradeWeights{}) {
		merged.GradeWeights = overlay.GradeWeights
	}
	if overlay.AdminScore > 0 {
		merged.AdminScore = overlay.AdminScore
	}
	if overlay.EnergyBaseline > 0 {
		merged.EnergyBaseline = overlay.EnergyBaseline
	}
	return merged
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
