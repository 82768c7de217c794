package application

import (
	"context"
	"math"
	"testing"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

type companySourceStub struct {
	company *portfolio.Company
}

func (s companySourceStub) Get(context.Context, string) (*portfolio.Company, error) {
	return s.company, nil
}

type componentSourceStub struct {
	components []portfolio.Component
}

func (s componentSourceStub) ListByCompany(context.Context, string) ([]portfolio.Component, error) {
	return s.components, nil
}

type renovationSourceStub struct {
	byComponent map[string][]portfolio.RenovationRecord
	assessments map[string][]portfolio.Assessment
}

func (s renovationSourceStub) ListByComponent(_ context.Context, componentID string) ([]portfolio.RenovationRecord, error) {
	return s.byComponent[componentID], nil
}

func (s renovationSourceStub) ListAssessments(_ context.Context, renovationID string) ([]portfolio.Assessment, error) {
	return s.assessments[renovationID], nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type planStoreStub struct {
	saved []PlanSnapshot
}

func (s *planStoreStub) SaveSnapshot(_ context.Context, snapshot *PlanSnapshot) error {
	snapshot.ID = "plan-stub"
	snapshot.Version = len(s.saved) + 1
	s.saved = append(s.saved, *snapshot)
	return nil
}

func (s *planStoreStub) LatestSnapshot(_ context.Context, _ string) (*PlanSnapshot, error) {
	if len(s.saved) == 0 {
		return nil, nil
	}
	return &s.saved[len(s.saved)-1], nil
}

func newTestPlanService(t *testing.T, companies CompanySource, components ComponentSource, renovations RenovationSource, store PlanStore) *PlanService {
	t.Helper()
	service, err := NewPlanService(companies, components, renovations, store, DefaultEngineConfig(), fixedClock{
		now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("new plan service: %v", err)
	}
	return service
}

func TestBuildPlan_OrderingAndSynergy(t *testing.T) {
	company := &portfolio.Company{ID: "c1", Name: "As Oy Testi", BuildYear: 1980, TotalShares: 100, TotalAreaM2: 1000}
	components := []portfolio.Component{
		{ID: "w1", CompanyID: "c1", Name: "Windows", Category: "windows", InstalledYear: 1990, ExpectedLifespanYears: 40},
		{ID: "f1", CompanyID: "c1", Name: "Facade", Category: "facade", InstalledYear: 1980, ExpectedLifespanYears: 50},
		{ID: "s1", CompanyID: "c1", Name: "Sewer", Category: "sewer", InstalledYear: 2020, ExpectedLifespanYears: 50},
		{ID: "x1", CompanyID: "c1", Name: "Old boiler", Category: "heating", InstalledYear: 1980, ExpectedLifespanYears: 25, Archived: true},
	}
	renovations := renovationSourceStub{
		byComponent: map[string][]portfolio.RenovationRecord{
			"s1": {{
				ID: "r1", CompanyID: "c1", ComponentID: "s1",
				Status: portfolio.RenovationStatusPlanned, PlannedYear: 2030,
				CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
		assessments: map[string][]portfolio.Assessment{
			"r1": {{ID: "a1", RenovationID: "r1", SeverityGrade: 4}},
		},
	}

	service := newTestPlanService(t, companySourceStub{company}, componentSourceStub{components}, renovations, nil)
	plan, err := service.BuildPlan(context.Background(), "c1", 10)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}

	if plan.CurrentYear != 2026 {
		t.Fatalf("expected current year 2026, got %d", plan.CurrentYear)
	}
	if len(plan.Items) != 3 {
		t.Fatalf("expected 3 items (archived skipped), got %d", len(plan.Items))
	}

	// Severity 4 forces the sewer to the top despite its distant due year.
	if plan.Items[0].Name != "Sewer" || plan.Items[0].Priority.Score != 100 {
		t.Fatalf("expected immediate sewer first, got %+v", plan.Items[0])
	}
	// Facade and windows tie on priority and due year; names break the tie.
	if plan.Items[1].Name != "Facade" || plan.Items[2].Name != "Windows" {
		t.Fatalf("expected facade then windows, got %s, %s", plan.Items[1].Name, plan.Items[2].Name)
	}

	// Both wear out in 2030: 4 years of inflation on today's unit prices.
	inflator := math.Pow(1.025, 4)
	wantFacade := 250 * 1000 * inflator
	wantWindows := 120 * 1000 * inflator
	if math.Abs(plan.Items[1].EstimatedCost-wantFacade) > 1e-6 {
		t.Fatalf("expected facade cost %v, got %v", wantFacade, plan.Items[1].EstimatedCost)
	}
	if math.Abs(plan.Items[2].EstimatedCost-wantWindows) > 1e-6 {
		t.Fatalf("expected windows cost %v, got %v", wantWindows, plan.Items[2].EstimatedCost)
	}

	// The sewer is due far outside the horizon, so the 2030 bundle is the
	// only budgeted year and it earns the facade+windows discount.
	if len(plan.YearTotals) != 1 {
		t.Fatalf("expected 1 budget year, got %v", plan.YearTotals)
	}
	groupCost := wantFacade + wantWindows
	if math.Abs(plan.YearTotals[2030]-groupCost) > 1e-6 {
		t.Fatalf("expected 2030 total %v, got %v", groupCost, plan.YearTotals[2030])
	}
	wantSavings := groupCost * 0.05
	if math.Abs(plan.Synergy.TotalSavings-wantSavings) > 1e-6 {
		t.Fatalf("expected savings %v, got %v", wantSavings, plan.Synergy.TotalSavings)
	}
	if math.Abs(plan.TotalCost-(groupCost-wantSavings)) > 1e-6 {
		t.Fatalf("expected total %v, got %v", groupCost-wantSavings, plan.TotalCost)
	}
}

func TestBuildPlan_BackfillsMissingRenovationCost(t *testing.T) {
	company := &portfolio.Company{ID: "c1", Name: "As Oy Testi", BuildYear: 1980, TotalShares: 100, TotalAreaM2: 1000}
	components := []portfolio.Component{
		{ID: "r1", CompanyID: "c1", Name: "Roof", Category: "roof", InstalledYear: 1980, ExpectedLifespanYears: 40},
	}
	renovations := renovationSourceStub{
		byComponent: map[string][]portfolio.RenovationRecord{
			"r1": {{
				ID: "ren1", CompanyID: "c1", ComponentID: "r1",
				Status: portfolio.RenovationStatusCompleted, YearDone: 2016,
				CreatedAt: time.Date(2016, 8, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
	}

	service := newTestPlanService(t, companySourceStub{company}, componentSourceStub{components}, renovations, nil)
	plan, err := service.BuildPlan(context.Background(), "c1", 10)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if len(plan.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(plan.Items))
	}

	item := plan.Items[0]
	if item.LastRenovationYear != 2016 {
		t.Fatalf("expected last renovation 2016, got %d", item.LastRenovationYear)
	}
	// Missing cost is today's price level deflated ten years on the
	// construction cost index, not on general inflation.
	want := 180 * 1000 / math.Pow(1.035, 10)
	if math.Abs(item.LastRenovationCost-want) > 1e-6 {
		t.Fatalf("expected backfilled cost %v, got %v", want, item.LastRenovationCost)
	}

	// The 2016 renovation reset the clock: 2016+40 leaves 30 years.
	if item.Condition.RemainingYears != 30 {
		t.Fatalf("expected 30 remaining years, got %d", item.Condition.RemainingYears)
	}
}

func TestBuildPlan_EmptyCompanyID(t *testing.T) {
	service := newTestPlanService(t,
		companySourceStub{&portfolio.Company{ID: "c1", TotalShares: 1, TotalAreaM2: 1}},
		componentSourceStub{nil},
		renovationSourceStub{},
		nil,
	)
	if _, err := service.BuildPlan(context.Background(), "", 10); err != portfolio.ErrEmptyCompanyID {
		t.Fatalf("expected ErrEmptyCompanyID, got %v", err)
	}
}

func TestBuildPlan_CompanyNotFound(t *testing.T) {
	service := newTestPlanService(t, companySourceStub{nil}, componentSourceStub{nil}, renovationSourceStub{}, nil)
	if _, err := service.BuildPlan(context.Background(), "missing", 10); err != portfolio.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerate_PersistsVersionedSnapshot(t *testing.T) {
	company := &portfolio.Company{ID: "c1", Name: "As Oy Testi", BuildYear: 1980, TotalShares: 100, TotalAreaM2: 1000}
	components := []portfolio.Component{
		{ID: "r1", CompanyID: "c1", Name: "Roof", Category: "roof", InstalledYear: 1990, ExpectedLifespanYears: 40},
	}
	store := &planStoreStub{}
	service := newTestPlanService(t, companySourceStub{company}, componentSourceStub{components}, renovationSourceStub{}, store)

	first, err := service.Generate(context.Background(), "c1", 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first.Version != 1 || first.CompanyID != "c1" {
		t.Fatalf("expected version 1 for c1, got %+v", first)
	}
	if len(first.Plan.Items) != 1 {
		t.Fatalf("expected the built plan inside the snapshot, got %+v", first.Plan)
	}

	second, err := service.Generate(context.Background(), "c1", 10)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("regeneration must append a new version, got %d", second.Version)
	}

	latest, err := service.LatestSnapshot(context.Background(), "c1")
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if latest == nil || latest.Version != 2 {
		t.Fatalf("expected latest version 2, got %+v", latest)
	}
}

func TestGenerate_NoStore(t *testing.T) {
	service := newTestPlanService(t, companySourceStub{nil}, componentSourceStub{nil}, renovationSourceStub{}, nil)
	if _, err := service.Generate(context.Background(), "c1", 10); err == nil {
		t.Fatal("expected error without a plan store")
	}
}
