package application

import (
	"context"
	"errors"
	"sort"
	"time"

	planning "taloyhtio-cloud/internal/planning/domain"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// CompanySource loads the company profile.
type CompanySource interface {
	Get(ctx context.Context, id string) (*portfolio.Company, error)
}

// ComponentSource lists the components of a company.
type ComponentSource interface {
	ListByCompany(ctx context.Context, companyID string) ([]portfolio.Component, error)
}

// RenovationSource loads renovation history and assessments.
type RenovationSource interface {
	ListByComponent(ctx context.Context, componentID string) ([]portfolio.RenovationRecord, error)
	ListAssessments(ctx context.Context, renovationID string) ([]portfolio.Assessment, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// PlanItem is one component line of the long-term plan.
type PlanItem struct {
	ComponentID        string                   `json:"component_id"`
	Name               string                   `json:"name"`
	Category           string                   `json:"category"`
	Condition          planning.ConditionResult `json:"condition"`
	Priority           planning.PriorityResult  `json:"priority"`
	DueYear            int                      `json:"due_year"`
	EstimatedCost      float64                  `json:"estimated_cost"`
	LastRenovationYear int                      `json:"last_renovation_year,omitempty"`
	LastRenovationCost float64                  `json:"last_renovation_cost,omitempty"`
}

// Plan is one generated long-term maintenance plan.
type Plan struct {
	CompanyID    string                  `json:"company_id"`
	GeneratedAt  time.Time               `json:"generated_at"`
	CurrentYear  int                     `json:"current_year"`
	HorizonYears int                     `json:"horizon_years"`
	Items        []PlanItem              `json:"items"`
	YearTotals   map[int]float64         `json:"year_totals"`
	Synergy      planning.SynergyResult  `json:"synergy"`
	TotalCost    float64                 `json:"total_cost"`
}

// DefaultPlanHorizonYears spans the usual long-term plan window.
const DefaultPlanHorizonYears = 10

// PlanSnapshot is one persisted, versioned rendition of a plan. Versions are
// append-only per company; regenerating never rewrites an older snapshot.
type PlanSnapshot struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Version     int       `json:"version"`
	Plan        Plan      `json:"plan"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PlanStore persists plan snapshots.
type PlanStore interface {
	SaveSnapshot(ctx context.Context, snapshot *PlanSnapshot) error
	LatestSnapshot(ctx context.Context, companyID string) (*PlanSnapshot, error)
}

// PlanService builds long-term renovation plans from portfolio facts.
type PlanService struct {
	companies   CompanySource
	components  ComponentSource
	renovations RenovationSource
	store       PlanStore
	cfg         EngineConfig
	clock       Clock
}

// NewPlanService constructs the service. The store may be nil when snapshot
// persistence is not needed.
func NewPlanService(companies CompanySource, components ComponentSource, renovations RenovationSource, store PlanStore, cfg EngineConfig, clock Clock) (*PlanService, error) {
	if companies == nil {
		return nil, errors.New("plan service: nil company source")
	}
	if components == nil {
		return nil, errors.New("plan service: nil component source")
	}
	if renovations == nil {
		return nil, errors.New("plan service: nil renovation source")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &PlanService{
		companies:   companies,
		components:  components,
		renovations: renovations,
		store:       store,
		cfg:         cfg,
		clock:       clock,
	}, nil
}

// Generate builds the plan and persists it as the company's next snapshot
// version.
func (s *PlanService) Generate(ctx context.Context, companyID string, horizonYears int) (*PlanSnapshot, error) {
	if s.store == nil {
		return nil, errors.New("plan service: no plan store configured")
	}
	plan, err := s.BuildPlan(ctx, companyID, horizonYears)
	if err != nil {
		return nil, err
	}
	snapshot := &PlanSnapshot{
		CompanyID:   plan.CompanyID,
		Plan:        *plan,
		GeneratedAt: plan.GeneratedAt,
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// LatestSnapshot returns the newest persisted plan version, nil when none
// has been generated yet.
func (s *PlanService) LatestSnapshot(ctx context.Context, companyID string) (*PlanSnapshot, error) {
	if s.store == nil {
		return nil, errors.New("plan service: no plan store configured")
	}
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	return s.store.LatestSnapshot(ctx, companyID)
}

// BuildPlan evaluates every active component and assembles the plan for the
// given horizon. Items are ordered by urgency, then due year, then name so
// identical inputs always produce the identical plan.
func (s *PlanService) BuildPlan(ctx context.Context, companyID string, horizonYears int) (*Plan, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	if horizonYears <= 0 {
		horizonYears = DefaultPlanHorizonYears
	}

	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, portfolio.ErrNotFound
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}

	components, err := s.components.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	currentYear := now.Year()
	lastYear := currentYear + horizonYears

	items := make([]PlanItem, 0, len(components))
	projects := make([]planning.Project, 0, len(components))

	for _, component := range components {
		if component.Archived {
			continue
		}
		history, err := s.renovations.ListByComponent(ctx, component.ID)
		if err != nil {
			return nil, err
		}

		condition, err := planning.EvaluateCondition(component, history, currentYear)
		if err != nil {
			return nil, err
		}

		assessments, err := s.latestAssessments(ctx, history)
		if err != nil {
			return nil, err
		}
		priority := planning.ScorePriority(component.Name, assessments, s.cfg.PriorityWeights)

		dueYear := currentYear + condition.RemainingYears
		if dueYear < currentYear {
			dueYear = currentYear
		}

		estimated, err := s.estimateCost(company, component, dueYear-currentYear)
		if err != nil {
			return nil, err
		}

		item := PlanItem{
			ComponentID:   component.ID,
			Name:          component.Name,
			Category:      component.Category,
			Condition:     condition,
			Priority:      priority,
			DueYear:       dueYear,
			EstimatedCost: estimated,
		}
		if year, cost, err := s.lastCompleted(company, component, history, currentYear); err != nil {
			return nil, err
		} else if year > 0 {
			item.LastRenovationYear = year
			item.LastRenovationCost = cost
		}
		items = append(items, item)

		if dueYear <= lastYear {
			projects = append(projects, planning.Project{
				ComponentID: component.ID,
				Name:        component.Name,
				Category:    component.Category,
				Year:        dueYear,
				Cost:        estimated,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority.Score != items[j].Priority.Score {
			return items[i].Priority.Score > items[j].Priority.Score
		}
		if items[i].DueYear != items[j].DueYear {
			return items[i].DueYear < items[j].DueYear
		}
		return items[i].Name < items[j].Name
	})

	yearTotals := make(map[int]float64, len(projects))
	total := 0.0
	for _, project := range projects {
		yearTotals[project.Year] += project.Cost
		total += project.Cost
	}
	synergy := planning.DetectSynergies(projects, s.cfg.SynergyDiscount)
	total -= synergy.TotalSavings

	return &Plan{
		CompanyID:    companyID,
		GeneratedAt:  now,
		CurrentYear:  currentYear,
		HorizonYears: horizonYears,
		Items:        items,
		YearTotals:   yearTotals,
		Synergy:      synergy,
		TotalCost:    total,
	}, nil
}

// latestAssessments loads the assessments of the most recent renovation
// record. Older assessments describe a state that renovation already fixed.
func (s *PlanService) latestAssessments(ctx context.Context, history []portfolio.RenovationRecord) ([]portfolio.Assessment, error) {
	var latest *portfolio.RenovationRecord
	for i := range history {
		record := &history[i]
		if latest == nil || record.CreatedAt.After(latest.CreatedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, nil
	}
	return s.renovations.ListAssessments(ctx, latest.ID)
}

// estimateCost prices the renovation at the due year: unit price times the
// company area, inflated forward with general inflation.
func (s *PlanService) estimateCost(company *portfolio.Company, component portfolio.Component, yearsAhead int) (float64, error) {
	unitPrice := component.UnitCostPerArea
	if unitPrice == 0 {
		unitPrice = s.cfg.Pricebook.Lookup(component.Category).UnitPricePerArea
	}
	if yearsAhead < 0 {
		yearsAhead = 0
	}
	return planning.InflateCost(unitPrice*company.TotalAreaM2, s.cfg.Rates.Inflation, yearsAhead)
}

// lastCompleted returns the newest completed renovation year and its cost.
// A missing cost is backfilled from today's price level deflated with the
// construction cost index, never with general inflation.
func (s *PlanService) lastCompleted(company *portfolio.Company, component portfolio.Component, history []portfolio.RenovationRecord, currentYear int) (int, float64, error) {
	year := 0
	cost := 0.0
	for _, record := range history {
		if record.Status != portfolio.RenovationStatusCompleted {
			continue
		}
		if record.YearDone > year {
			year = record.YearDone
			cost = record.Cost
		}
	}
	if year == 0 {
		return 0, 0, nil
	}
	if cost == 0 {
		todays, err := s.estimateCost(company, component, 0)
		if err != nil {
			return 0, 0, err
		}
		estimated, err := planning.DeflateCost(todays, s.cfg.Rates.ConstructionCostIndex, currentYear-year)
		if err != nil {
			return 0, 0, err
		}
		cost = estimated
	}
	return year, cost, nil
}
