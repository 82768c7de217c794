package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
	portfoliorepo "taloyhtio-cloud/internal/portfolio/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type config struct {
	dsn       string
	companyID string
	name      string
	buildYear int
	shares    int
	areaM2    float64
}

func main() {
	cfg := parseConfig()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := seed(ctx, db, cfg); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("demo seed completed: company=%s", cfg.companyID)
}

func parseConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.dsn, "pg-dsn", envOrDefault("PG_DSN", envOrDefault("DATABASE_URL", "")), "Postgres DSN")
	flag.StringVar(&cfg.companyID, "company-id", envOrDefault("COMPANY_ID", "company-demo"), "company id to seed")
	flag.StringVar(&cfg.name, "company-name", envOrDefault("COMPANY_NAME", "As Oy Esimerkkitalo"), "company name")
	flag.IntVar(&cfg.buildYear, "build-year", 1978, "building construction year")
	flag.IntVar(&cfg.shares, "shares", 1200, "total share count")
	flag.Float64Var(&cfg.areaM2, "area-m2", 2400, "total living area in m2")
	flag.Parse()
	return cfg
}

func seed(ctx context.Context, db *sql.DB, cfg config) error {
	companies := portfoliorepo.NewCompanyRepository(db)
	components := portfoliorepo.NewComponentRepository(db)
	renovations := portfoliorepo.NewRenovationRepository(db)
	snapshots := portfoliorepo.NewSnapshotRepository(db)
	observations := portfoliorepo.NewObservationRepository(db)

	now := time.Now().UTC()
	currentYear := now.Year()

	company := &portfolio.Company{
		ID:          cfg.companyID,
		Name:        cfg.name,
		BuildYear:   cfg.buildYear,
		TotalShares: cfg.shares,
		TotalAreaM2: cfg.areaM2,
	}
	if err := companies.Save(ctx, company); err != nil {
		return fmt.Errorf("save company: %w", err)
	}

	demoComponents := []portfolio.Component{
		{Name: "Roof", Category: "roof", InstalledYear: cfg.buildYear, ExpectedLifespanYears: 40},
		{Name: "Facade", Category: "facade", InstalledYear: cfg.buildYear, ExpectedLifespanYears: 50},
		{Name: "Windows", Category: "windows", InstalledYear: cfg.buildYear + 20, ExpectedLifespanYears: 40},
		{Name: "Main piping", Category: "plumbing", InstalledYear: cfg.buildYear, ExpectedLifespanYears: 50},
		{Name: "District heating exchanger", Category: "heating", InstalledYear: currentYear - 15, ExpectedLifespanYears: 25},
	}
	for i := range demoComponents {
		component := demoComponents[i]
		component.ID = fmt.Sprintf("%s-cmp-%02d", cfg.companyID, i+1)
		component.CompanyID = cfg.companyID
		if err := components.Save(ctx, &component); err != nil {
			return fmt.Errorf("save component %s: %w", component.Name, err)
		}
	}

	// One completed roof renovation so the plan shows renovation history.
	roofRenovation := &portfolio.RenovationRecord{
		ID:          cfg.companyID + "-ren-01",
		CompanyID:   cfg.companyID,
		ComponentID: cfg.companyID + "-cmp-01",
		Status:      portfolio.RenovationStatusCompleted,
		YearDone:    currentYear - 12,
		Cost:        310000,
	}
	if err := renovations.Save(ctx, roofRenovation); err != nil {
		return fmt.Errorf("save renovation: %w", err)
	}

	plumbing := &portfolio.RenovationRecord{
		ID:          cfg.companyID + "-ren-02",
		CompanyID:   cfg.companyID,
		ComponentID: cfg.companyID + "-cmp-04",
		Status:      portfolio.RenovationStatusPlanned,
		PlannedYear: currentYear + 3,
		Cost:        1800000,
	}
	if err := renovations.Save(ctx, plumbing); err != nil {
		return fmt.Errorf("save renovation: %w", err)
	}
	assessment := &portfolio.Assessment{
		ID:            cfg.companyID + "-ass-01",
		RenovationID:  plumbing.ID,
		SeverityGrade: 3,
		Note:          "Pipe camera survey shows heavy corrosion",
		CreatedAt:     now,
	}
	if err := renovations.SaveAssessment(ctx, assessment); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}

	snapshot := &portfolio.FinancialSnapshot{
		ID:             fmt.Sprintf("%s-fin-%d", cfg.companyID, now.Unix()),
		CompanyID:      cfg.companyID,
		MonthlyIncome:  9800,
		MonthlyTarget:  9600,
		ReserveFund:    145000,
		EnergyCostDiff: 8,
		UnpaidInvoices: 2,
		CapturedAt:     now,
	}
	if err := snapshots.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	demoObservations := []portfolio.Observation{
		{Severity: 2, Status: portfolio.ObservationStatusOpen, Title: "Moisture staining in stairwell B ceiling"},
		{Severity: 3, Status: portfolio.ObservationStatusOpen, Title: "Drainage well overflow in heavy rain"},
	}
	for i := range demoObservations {
		observation := demoObservations[i]
		observation.ID = fmt.Sprintf("%s-obs-%02d", cfg.companyID, i+1)
		observation.CompanyID = cfg.companyID
		if err := observations.Save(ctx, &observation); err != nil {
			return fmt.Errorf("save observation: %w", err)
		}
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
