package planning

import (
	"errors"
	"testing"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

func TestEvaluateCondition_FromInstallationYear(t *testing.T) {
	component := portfolio.Component{
		Name:                  "Roof",
		InstalledYear:         2000,
		ExpectedLifespanYears: 40,
	}

	result, err := EvaluateCondition(component, nil, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RemainingYears != 14 {
		t.Fatalf("expected 14 remaining years, got %d", result.RemainingYears)
	}
	if diff := result.Percentage - 35; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected 35%%, got %v", result.Percentage)
	}
	if result.Status != ConditionWarning {
		t.Fatalf("expected warning, got %s", result.Status)
	}
}

func TestEvaluateCondition_CompletedRenovationResetsClock(t *testing.T) {
	component := portfolio.Component{
		Name:                  "Roof",
		InstalledYear:         1980,
		ExpectedLifespanYears: 40,
	}
	history := []portfolio.RenovationRecord{
		{Status: portfolio.RenovationStatusCompleted, YearDone: 2015},
		{Status: portfolio.RenovationStatusPlanned, PlannedYear: 2030},
	}

	result, err := EvaluateCondition(component, history, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RemainingYears != 29 {
		t.Fatalf("expected 29 remaining years, got %d", result.RemainingYears)
	}
	if result.Status != ConditionGood {
		t.Fatalf("expected good, got %s", result.Status)
	}
}

func TestEvaluateCondition_PastEndOfLifeClampsToZero(t *testing.T) {
	component := portfolio.Component{
		Name:                  "Windows",
		InstalledYear:         1970,
		ExpectedLifespanYears: 40,
	}

	result, err := EvaluateCondition(component, nil, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Percentage != 0 {
		t.Fatalf("expected 0%%, got %v", result.Percentage)
	}
	if result.Status != ConditionCritical {
		t.Fatalf("expected critical, got %s", result.Status)
	}
	if result.RemainingYears >= 0 {
		t.Fatalf("expected negative remaining years, got %d", result.RemainingYears)
	}
}

func TestEvaluateCondition_InvalidLifespan(t *testing.T) {
	component := portfolio.Component{Name: "Roof", InstalledYear: 2000}

	_, err := EvaluateCondition(component, nil, 2026)
	if !errors.Is(err, ErrInvalidLifespan) {
		t.Fatalf("expected ErrInvalidLifespan, got %v", err)
	}
}

func TestEvaluateCondition_MonotonicOverTime(t *testing.T) {
	component := portfolio.Component{
		Name:                  "Facade",
		InstalledYear:         1990,
		ExpectedLifespanYears: 50,
	}

	previous := 101.0
	for year := 2000; year <= 2050; year += 5 {
		result, err := EvaluateCondition(component, nil, year)
		if err != nil {
			t.Fatalf("unexpected error at %d: %v", year, err)
		}
		if result.Percentage > previous {
			t.Fatalf("condition improved without renovation at %d: %v > %v", year, result.Percentage, previous)
		}
		previous = result.Percentage
	}
}

func TestConditionStatusBuckets(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, ConditionExcellent},
		{76, ConditionExcellent},
		{75, ConditionGood},
		{41, ConditionGood},
		{40, ConditionWarning},
		{16, ConditionWarning},
		{15, ConditionCritical},
		{0, ConditionCritical},
	}
	for _, tc := range cases {
		if got := conditionStatus(tc.percentage); got != tc.want {
			t.Fatalf("conditionStatus(%v) = %s, want %s", tc.percentage, got, tc.want)
		}
	}
}
