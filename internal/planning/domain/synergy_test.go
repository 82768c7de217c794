package planning

import (
	"math"
	"testing"
)

func TestDetectSynergies_FacadeAndWindowsSameYear(t *testing.T) {
	projects := []Project{
		{Name: "Facade", Category: "facade", Year: 2030, Cost: 100000},
		{Name: "Windows", Category: "windows", Year: 2030, Cost: 50000},
	}

	result := DetectSynergies(projects, 0.05)
	if math.Abs(result.TotalSavings-7500) > 1e-9 {
		t.Fatalf("expected 7500 savings, got %v", result.TotalSavings)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}
	if result.Groups[0].Year != 2030 {
		t.Fatalf("expected year 2030, got %d", result.Groups[0].Year)
	}
}

func TestDetectSynergies_DifferentYearsNoDiscount(t *testing.T) {
	projects := []Project{
		{Name: "Facade", Category: "facade", Year: 2030, Cost: 100000},
		{Name: "Windows", Category: "windows", Year: 2031, Cost: 50000},
	}

	result := DetectSynergies(projects, 0.05)
	if result.TotalSavings != 0 {
		t.Fatalf("expected no savings, got %v", result.TotalSavings)
	}
	if len(result.Groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(result.Groups))
	}
}

func TestDetectSynergies_UnrelatedPairNoDiscount(t *testing.T) {
	projects := []Project{
		{Name: "Roof", Category: "roof", Year: 2030, Cost: 100000},
		{Name: "Elevator", Category: "elevator", Year: 2030, Cost: 50000},
	}

	result := DetectSynergies(projects, 0.05)
	if result.TotalSavings != 0 {
		t.Fatalf("expected no savings, got %v", result.TotalSavings)
	}
}

func TestDetectSynergies_MultipleYearGroups(t *testing.T) {
	projects := []Project{
		{Name: "Facade", Category: "facade", Year: 2030, Cost: 100000},
		{Name: "Windows", Category: "windows", Year: 2030, Cost: 50000},
		{Name: "Facade south", Category: "facade", Year: 2035, Cost: 80000},
		{Name: "Windows south", Category: "windows", Year: 2035, Cost: 40000},
	}

	result := DetectSynergies(projects, 0.05)
	want := 0.05*150000 + 0.05*120000
	if math.Abs(result.TotalSavings-want) > 1e-9 {
		t.Fatalf("expected %v savings, got %v", want, result.TotalSavings)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Year != 2030 || result.Groups[1].Year != 2035 {
		t.Fatalf("expected groups sorted by year, got %+v", result.Groups)
	}
}

func TestDetectSynergies_DefaultDiscount(t *testing.T) {
	projects := []Project{
		{Name: "Facade", Category: "facade", Year: 2030, Cost: 100000},
		{Name: "Windows", Category: "windows", Year: 2030, Cost: 100000},
	}

	result := DetectSynergies(projects, 0)
	want := DefaultSynergyDiscount * 200000
	if math.Abs(result.TotalSavings-want) > 1e-9 {
		t.Fatalf("expected default discount %v, got %v", want, result.TotalSavings)
	}
}
