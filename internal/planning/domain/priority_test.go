package planning

import (
	"testing"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

func TestScorePriority_SeverityFourIsImmediate(t *testing.T) {
	assessments := []portfolio.Assessment{
		{SeverityGrade: 2},
		{SeverityGrade: 4},
	}

	result := ScorePriority("Elevator", assessments, DefaultPriorityWeights())
	if result.Score != 100 {
		t.Fatalf("expected score 100, got %v", result.Score)
	}
	if result.Label != PriorityImmediate {
		t.Fatalf("expected immediate, got %s", result.Label)
	}
}

func TestScorePriority_CriticalInfrastructure(t *testing.T) {
	assessments := []portfolio.Assessment{{SeverityGrade: 3}}

	result := ScorePriority("Main piping", assessments, DefaultPriorityWeights())
	// 0.4*75 + 0.3*100 + 0.15*20 + 0.15*50
	if !closeTo(result.Score, 70.5) {
		t.Fatalf("expected 70.5, got %v", result.Score)
	}
	if result.Label != PriorityMedium {
		t.Fatalf("expected medium, got %s", result.Label)
	}
}

func TestScorePriority_EnergyRelevant(t *testing.T) {
	assessments := []portfolio.Assessment{{SeverityGrade: 3}}

	result := ScorePriority("Window glazing", assessments, DefaultPriorityWeights())
	// 0.4*75 + 0.3*50 + 0.15*100 + 0.15*50
	if !closeTo(result.Score, 67.5) {
		t.Fatalf("expected 67.5, got %v", result.Score)
	}
	if result.Label != PriorityMedium {
		t.Fatalf("expected medium, got %s", result.Label)
	}
}

func TestScorePriority_NoAssessmentsDefaultsLow(t *testing.T) {
	result := ScorePriority("Elevator", nil, DefaultPriorityWeights())
	// 0.4*25 + 0.3*50 + 0.15*20 + 0.15*50
	if !closeTo(result.Score, 35.5) {
		t.Fatalf("expected 35.5, got %v", result.Score)
	}
	if result.Label != PriorityLow {
		t.Fatalf("expected low, got %s", result.Label)
	}
}

func TestScorePriority_Deterministic(t *testing.T) {
	assessments := []portfolio.Assessment{{SeverityGrade: 2}, {SeverityGrade: 3}}

	first := ScorePriority("Roof", assessments, DefaultPriorityWeights())
	second := ScorePriority("Roof", assessments, DefaultPriorityWeights())
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestPriorityLabelThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{80, PriorityHigh},
		{79.9, PriorityMedium},
		{50, PriorityMedium},
		{49.9, PriorityLow},
	}
	for _, tc := range cases {
		if got := priorityLabel(tc.score); got != tc.want {
			t.Fatalf("priorityLabel(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	return diff < 1e-9 && diff > -1e-9
}
