package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEngineConfig_Defaults(t *testing.T) {
	t.Setenv("ENGINE_CONFIG", "")
	t.Setenv("INFLATION_RATE", "")
	t.Setenv("CONSTRUCTION_COST_INDEX", "")
	t.Setenv("ENERGY_PRICE_INFLATION", "")
	t.Setenv("DISCOUNT_RATE", "")

	cfg, err := LoadEngineConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Rates.Inflation != 0.025 {
		t.Fatalf("expected default inflation 0.025, got %v", cfg.Rates.Inflation)
	}
	if cfg.SynergyDiscount != 0.05 {
		t.Fatalf("expected default synergy discount 0.05, got %v", cfg.SynergyDiscount)
	}
	if len(cfg.Strategies) != 3 {
		t.Fatalf("expected 3 default strategies, got %d", len(cfg.Strategies))
	}
}

func TestLoadEngineConfig_YamlOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	content := []byte(`
synergy_discount: 0.08
pricebook:
  facade:
    unit_price_per_area: 300
admin_score: 65
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	t.Setenv("ENGINE_CONFIG", path)
	t.Setenv("INFLATION_RATE", "")
	t.Setenv("CONSTRUCTION_COST_INDEX", "")
	t.Setenv("ENERGY_PRICE_INFLATION", "")
	t.Setenv("DISCOUNT_RATE", "")

	cfg, err := LoadEngineConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SynergyDiscount != 0.08 {
		t.Fatalf("expected overlaid discount 0.08, got %v", cfg.SynergyDiscount)
	}
	if cfg.AdminScore != 65 {
		t.Fatalf("expected overlaid admin score 65, got %d", cfg.AdminScore)
	}
	// Overlay prices merge over the defaults instead of replacing them.
	facade := cfg.Pricebook.Lookup("facade")
	if facade.UnitPricePerArea != 300 {
		t.Fatalf("expected overlaid facade price 300, got %v", facade.UnitPricePerArea)
	}
	if facade.ExpectedLifeYears != 50 {
		t.Fatalf("untouched facade lifespan must survive, got %d", facade.ExpectedLifeYears)
	}
	roof := cfg.Pricebook.Lookup("roof")
	if roof.UnitPricePerArea != 180 {
		t.Fatalf("expected default roof price to survive the overlay, got %v", roof.UnitPricePerArea)
	}
	if cfg.Rates.Inflation != 0.025 {
		t.Fatalf("untouched rates must keep defaults, got %v", cfg.Rates.Inflation)
	}
}

func TestLoadEngineConfig_EnvRateOverride(t *testing.T) {
	t.Setenv("ENGINE_CONFIG", "")
	t.Setenv("INFLATION_RATE", "0.031")
	t.Setenv("CONSTRUCTION_COST_INDEX", "")
	t.Setenv("ENERGY_PRICE_INFLATION", "")
	t.Setenv("DISCOUNT_RATE", "")

	cfg, err := LoadEngineConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Rates.Inflation != 0.031 {
		t.Fatalf("expected env inflation 0.031, got %v", cfg.Rates.Inflation)
	}
	if cfg.Rates.DiscountRate != 0.05 {
		t.Fatalf("other rates must keep defaults, got %v", cfg.Rates.DiscountRate)
	}
}
