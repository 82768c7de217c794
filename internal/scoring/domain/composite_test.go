package scoring

import (
	"errors"
	"testing"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

func TestTechnicalScore_Penalties(t *testing.T) {
	observations := []portfolio.Observation{
		{Severity: 1, Status: portfolio.ObservationStatusOpen},
		{Severity: 1, Status: portfolio.ObservationStatusOpen},
		{Severity: 2, Status: portfolio.ObservationStatusOpen},
	}
	if got := TechnicalScore(observations); got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}
}

func TestTechnicalScore_IgnoresResolved(t *testing.T) {
	observations := []portfolio.Observation{
		{Severity: 1, Status: portfolio.ObservationStatusResolved},
		{Severity: 3, Status: portfolio.ObservationStatusOpen},
	}
	if got := TechnicalScore(observations); got != 98 {
		t.Fatalf("expected 98, got %d", got)
	}
}

func TestTechnicalScore_FlooredAtZero(t *testing.T) {
	observations := make([]portfolio.Observation, 15)
	for i := range observations {
		observations[i] = portfolio.Observation{Severity: 1, Status: portfolio.ObservationStatusOpen}
	}
	if got := TechnicalScore(observations); got != 0 {
		t.Fatalf("expected floor 0, got %d", got)
	}
}

func TestFinancialScore_RatioAndBonus(t *testing.T) {
	snapshot := portfolio.FinancialSnapshot{ReserveFund: 1000, MonthlyTarget: 1000, UnpaidInvoices: 0}
	// round(1*30+20) = 50, plus clean ledger bonus.
	got, err := FinancialScore(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
}

func TestFinancialScore_BonusNeverExceedsCap(t *testing.T) {
	snapshot := portfolio.FinancialSnapshot{ReserveFund: 2500, MonthlyTarget: 1000, UnpaidInvoices: 0}
	// round(2.5*30+20) = 95, bonus would land on 105.
	got, err := FinancialScore(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Fatalf("expected cap 100, got %d", got)
	}
}

func TestFinancialScore_UnpaidInvoicesNoBonus(t *testing.T) {
	snapshot := portfolio.FinancialSnapshot{ReserveFund: 1000, MonthlyTarget: 1000, UnpaidInvoices: 2}
	got, err := FinancialScore(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestFinancialScore_NonPositiveTarget(t *testing.T) {
	_, err := FinancialScore(portfolio.FinancialSnapshot{ReserveFund: 1000})
	if !errors.Is(err, portfolio.ErrNonPositiveTarget) {
		t.Fatalf("expected ErrNonPositiveTarget, got %v", err)
	}
}

func TestAggregate_RoundedMean(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	score := Aggregate("company-1", 75, 100, 70, at)
	// (75+100+70)/3 = 81.67 rounds to 82.
	if score.Total != 82 {
		t.Fatalf("expected 82, got %d", score.Total)
	}
	if score.Technical != 75 || score.Financial != 100 || score.Admin != 70 {
		t.Fatalf("pillars must be carried through, got %+v", score)
	}
	if !score.ComputedAt.Equal(at) {
		t.Fatalf("expected computed_at %v, got %v", at, score.ComputedAt)
	}
}
