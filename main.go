package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"taloyhtio-cloud/internal/audit"
	"taloyhtio-cloud/internal/auth"
	financeapp "taloyhtio-cloud/internal/finance/application"
	financehttp "taloyhtio-cloud/internal/finance/interfaces/http"
	forecastapp "taloyhtio-cloud/internal/forecast/application"
	forecasthttp "taloyhtio-cloud/internal/forecast/interfaces/http"
	"taloyhtio-cloud/internal/observability/metrics"
	planapp "taloyhtio-cloud/internal/planning/application"
	planrepo "taloyhtio-cloud/internal/planning/infrastructure/postgres"
	planhttp "taloyhtio-cloud/internal/planning/interfaces/http"
	portfolioapp "taloyhtio-cloud/internal/portfolio/application"
	portfoliorepo "taloyhtio-cloud/internal/portfolio/infrastructure/postgres"
	portfoliohttp "taloyhtio-cloud/internal/portfolio/interfaces/http"
	scoringapp "taloyhtio-cloud/internal/scoring/application"
	scoring "taloyhtio-cloud/internal/scoring/domain"
	scoringrepo "taloyhtio-cloud/internal/scoring/infrastructure/postgres"
	scoringhttp "taloyhtio-cloud/internal/scoring/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	engineCfg, err := planapp.LoadEngineConfig()
	if err != nil {
		logger.Fatalf("engine config error: %v", err)
	}

	companyRepo := portfoliorepo.NewCompanyRepository(db)
	componentRepo := portfoliorepo.NewComponentRepository(db)
	renovationRepo := portfoliorepo.NewRenovationRepository(db)
	snapshotRepo := portfoliorepo.NewSnapshotRepository(db)
	observationRepo := portfoliorepo.NewObservationRepository(db)
	scoreRepo := scoringrepo.NewScoreRepository(db)

	portfolioService, err := portfolioapp.NewService(companyRepo, componentRepo, renovationRepo, snapshotRepo, observationRepo, nil)
	if err != nil {
		logger.Fatalf("portfolio service error: %v", err)
	}
	portfolioHandler, err := portfoliohttp.NewHandler(portfolioService)
	if err != nil {
		logger.Fatalf("portfolio handler error: %v", err)
	}

	planSnapshotRepo := planrepo.NewPlanSnapshotRepository(db)
	planService, err := planapp.NewPlanService(companyRepo, componentRepo, renovationRepo, planSnapshotRepo, engineCfg, nil)
	if err != nil {
		logger.Fatalf("plan service error: %v", err)
	}
	planHandler, err := planhttp.NewHandler(planService, auditRepo)
	if err != nil {
		logger.Fatalf("plan handler error: %v", err)
	}

	financingService, err := financeapp.NewFinancingService(companyRepo, engineCfg.Rates)
	if err != nil {
		logger.Fatalf("financing service error: %v", err)
	}
	financingHandler, err := financehttp.NewHandler(financingService)
	if err != nil {
		logger.Fatalf("financing handler error: %v", err)
	}

	forecastService, err := forecastapp.NewForecastService(companyRepo, snapshotRepo, engineCfg.Strategies, engineCfg.Rates)
	if err != nil {
		logger.Fatalf("forecast service error: %v", err)
	}
	forecastHandler, err := forecasthttp.NewHandler(forecastService)
	if err != nil {
		logger.Fatalf("forecast handler error: %v", err)
	}

	scoringService, err := scoringapp.NewScoringService(
		observationRepo,
		snapshotRepo,
		scoreRepo,
		scoring.ConstantAdminScore(engineCfg.AdminScore),
		engineCfg.GradeWeights,
		engineCfg.EnergyBaseline,
		nil,
		logger,
	)
	if err != nil {
		logger.Fatalf("scoring service error: %v", err)
	}
	scoringHandler, err := scoringhttp.NewHandler(scoringService, auditRepo)
	if err != nil {
		logger.Fatalf("scoring handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/components", portfolioHandler)
	mux.Handle("/api/v1/renovations", portfolioHandler)
	mux.Handle("/api/v1/renovations/", portfolioHandler)
	mux.Handle("/api/v1/snapshots", portfolioHandler)
	mux.Handle("/api/v1/observations", portfolioHandler)
	mux.Handle("/api/v1/observations/", portfolioHandler)
	mux.Handle("/api/v1/plan", planHandler)
	mux.Handle("/api/v1/plan/", planHandler)
	mux.Handle("/api/v1/financing/", financingHandler)
	mux.Handle("/api/v1/forecast", forecastHandler)
	mux.Handle("/api/v1/scores/", scoringHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
