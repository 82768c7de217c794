package interfaces

import (
	"bytes"
	"testing"
	"time"

	planapp "taloyhtio-cloud/internal/planning/application"
	planning "taloyhtio-cloud/internal/planning/domain"
)

func testPlan() *planapp.Plan {
	return &planapp.Plan{
		CompanyID:    "company-1",
		GeneratedAt:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		CurrentYear:  2026,
		HorizonYears: 10,
		Items: []planapp.PlanItem{
			{
				ComponentID:   "cmp-1",
				Name:          "Facade",
				Category:      "facade",
				Condition:     planning.ConditionResult{RemainingYears: 4, Percentage: 8, Status: "critical"},
				Priority:      planning.PriorityResult{Score: 82, Label: "high"},
				DueYear:       2030,
				EstimatedCost: 260000,
			},
			{
				ComponentID:   "cmp-2",
				Name:          "Windows",
				Category:      "windows",
				Condition:     planning.ConditionResult{RemainingYears: 4, Percentage: 10, Status: "critical"},
				Priority:      planning.PriorityResult{Score: 67.5, Label: "medium"},
				DueYear:       2030,
				EstimatedCost: 130000,
			},
		},
		YearTotals: map[int]float64{2030: 390000},
		Synergy:    planning.SynergyResult{TotalSavings: 19500},
		TotalCost:  370500,
	}
}

func TestBuildPlanPDF(t *testing.T) {
	data, err := BuildPlanPDF(testPlan())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty pdf output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected pdf magic bytes, got %q", data[:4])
	}
}

func TestBuildPlanXLSX(t *testing.T) {
	data, err := BuildPlanXLSX(testPlan())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty xlsx output")
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("expected zip magic bytes, got %q", data[:2])
	}
}

func TestBuildPlanExports_EmptyPlan(t *testing.T) {
	plan := &planapp.Plan{
		CompanyID:   "company-1",
		GeneratedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		CurrentYear: 2026,
	}
	if _, err := BuildPlanPDF(plan); err != nil {
		t.Fatalf("pdf of empty plan: %v", err)
	}
	if _, err := BuildPlanXLSX(plan); err != nil {
		t.Fatalf("xlsx of empty plan: %v", err)
	}
}
