package finance

import (
	"errors"
	"math"
	"testing"
)

func TestProjectROI_ZeroSavings(t *testing.T) {
	scenario := InvestmentScenario{Type: ScenarioSolar, InitialCost: 50000, AnnualSavings: 0}

	result, err := ProjectROI(scenario, ROIAssumptions{DiscountRate: 0.05, EnergyPriceInflation: 0.03})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NPV != -50000 {
		t.Fatalf("expected NPV -50000, got %v", result.NPV)
	}
	if result.PaybackYears != PaybackSentinelYears {
		t.Fatalf("expected sentinel payback, got %v", result.PaybackYears)
	}
}

func TestProjectROI_FlatRates(t *testing.T) {
	// With zero discount and zero energy inflation the NPV is a plain sum.
	scenario := InvestmentScenario{Type: ScenarioGSHP, InitialCost: 100000, AnnualSavings: 8000}

	result, err := ProjectROI(scenario, ROIAssumptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.NPV-(-20000)) > 1e-6 {
		t.Fatalf("expected NPV -20000, got %v", result.NPV)
	}
	if math.Abs(result.PaybackYears-12.5) > 1e-9 {
		t.Fatalf("expected payback 12.5, got %v", result.PaybackYears)
	}
	if result.HorizonYears != DefaultROIHorizonYears {
		t.Fatalf("expected default horizon, got %d", result.HorizonYears)
	}
}

func TestProjectROI_DiscountingLowersValue(t *testing.T) {
	scenario := InvestmentScenario{Type: ScenarioExhaustHeatRecovery, InitialCost: 100000, AnnualSavings: 8000}

	flat, err := ProjectROI(scenario, ROIAssumptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	discounted, err := ProjectROI(scenario, ROIAssumptions{DiscountRate: 0.05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discounted.NPV >= flat.NPV {
		t.Fatalf("discounting must lower NPV: %v >= %v", discounted.NPV, flat.NPV)
	}

	inflated, err := ProjectROI(scenario, ROIAssumptions{DiscountRate: 0.05, EnergyPriceInflation: 0.03})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inflated.NPV <= discounted.NPV {
		t.Fatalf("rising energy prices must raise NPV: %v <= %v", inflated.NPV, discounted.NPV)
	}
}

func TestProjectROI_PaybackCapped(t *testing.T) {
	scenario := InvestmentScenario{Type: ScenarioSolar, InitialCost: 1000000, AnnualSavings: 100}

	result, err := ProjectROI(scenario, ROIAssumptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaybackYears != PaybackSentinelYears {
		t.Fatalf("expected capped payback, got %v", result.PaybackYears)
	}
}

func TestProjectROI_Validation(t *testing.T) {
	if _, err := ProjectROI(InvestmentScenario{InitialCost: 0}, ROIAssumptions{}); !errors.Is(err, ErrNonPositivePrincipal) {
		t.Fatalf("expected ErrNonPositivePrincipal, got %v", err)
	}
	if _, err := ProjectROI(InvestmentScenario{InitialCost: 1000, AnnualSavings: -1}, ROIAssumptions{}); !errors.Is(err, ErrNegativeSavings) {
		t.Fatalf("expected ErrNegativeSavings, got %v", err)
	}
}
