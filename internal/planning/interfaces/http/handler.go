package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"taloyhtio-cloud/internal/audit"
	"taloyhtio-cloud/internal/auth"
	"taloyhtio-cloud/internal/observability/metrics"
	planapp "taloyhtio-cloud/internal/planning/application"
	planiface "taloyhtio-cloud/internal/planning/interfaces"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// Handler provides plan generation and export endpoints.
type Handler struct {
	service *planapp.PlanService
	audits  audit.Logger
}

// NewHandler constructs a handler. The audit logger may be nil.
func NewHandler(service *planapp.PlanService, audits audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("plan handler: nil service")
	}
	return &Handler{service: service, audits: audits}, nil
}

// ServeHTTP handles /api/v1/plan and its subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/plan" && r.Method == http.MethodPost {
		h.handleGenerate(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/plan":
		h.handlePlan(w, r)
	case "/api/v1/plan/latest":
		h.handleLatest(w, r)
	case "/api/v1/plan/export.xlsx":
		h.handleExport(w, r, "xlsx")
	case "/api/v1/plan/export.pdf":
		h.handleExport(w, r, "pdf")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	plan, err := h.buildPlan(r)
	if err != nil {
		metrics.ObservePlanGenerate(metrics.ResultError, time.Since(started))
		respondPlanError(w, err)
		return
	}
	metrics.ObservePlanGenerate(metrics.ResultSuccess, time.Since(started))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(plan)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	started := time.Now()
	plan, err := h.buildPlan(r)
	if err != nil {
		metrics.ObservePlanExport(format, metrics.ResultError, time.Since(started))
		respondPlanError(w, err)
		return
	}

	var (
		payload     []byte
		contentType string
		filename    string
	)
	switch format {
	case "xlsx":
		payload, err = planiface.BuildPlanXLSX(plan)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "renovation-plan.xlsx"
	case "pdf":
		payload, err = planiface.BuildPlanPDF(plan)
		contentType = "application/pdf"
		filename = "renovation-plan.pdf"
	}
	if err != nil {
		metrics.ObservePlanExport(format, metrics.ResultError, time.Since(started))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObservePlanExport(format, metrics.ResultSuccess, time.Since(started))
	h.auditExport(r, plan.CompanyID, format, len(payload))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

func (h *Handler) buildPlan(r *http.Request) (*planapp.Plan, error) {
	companyID := r.URL.Query().Get("company_id")
	if authenticated := auth.CompanyIDFromContext(r.Context()); authenticated != "" {
		if companyID != "" && companyID != authenticated {
			return nil, errCompanyMismatch
		}
		companyID = authenticated
	}

	horizon := 0
	if raw := r.URL.Query().Get("horizon_years"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, errInvalidHorizon
		}
		horizon = parsed
	}
	return h.service.BuildPlan(r.Context(), companyID, horizon)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID    string `json:"company_id"`
		HorizonYears int    `json:"horizon_years"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	companyID := body.CompanyID
	if authenticated := auth.CompanyIDFromContext(r.Context()); authenticated != "" {
		if companyID != "" && companyID != authenticated {
			respondPlanError(w, errCompanyMismatch)
			return
		}
		companyID = authenticated
	}

	started := time.Now()
	snapshot, err := h.service.Generate(r.Context(), companyID, body.HorizonYears)
	if err != nil {
		metrics.ObservePlanGenerate(metrics.ResultError, time.Since(started))
		respondPlanError(w, err)
		return
	}
	metrics.ObservePlanGenerate(metrics.ResultSuccess, time.Since(started))
	h.auditGenerate(r, snapshot)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(snapshot)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if authenticated := auth.CompanyIDFromContext(r.Context()); authenticated != "" {
		if companyID != "" && companyID != authenticated {
			respondPlanError(w, errCompanyMismatch)
			return
		}
		companyID = authenticated
	}

	snapshot, err := h.service.LatestSnapshot(r.Context(), companyID)
	if err != nil {
		respondPlanError(w, err)
		return
	}
	if snapshot == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snapshot)
}

func (h *Handler) auditGenerate(r *http.Request, snapshot *planapp.PlanSnapshot) {
	if h.audits == nil {
		return
	}
	meta, _ := json.Marshal(map[string]any{"version": snapshot.Version, "items": len(snapshot.Plan.Items)})
	_ = h.audits.Log(r.Context(), audit.Entry{
		CompanyID:    snapshot.CompanyID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "plan.generate",
		ResourceType: "plan",
		ResourceID:   snapshot.ID,
		Metadata:     meta,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
}

func (h *Handler) auditExport(r *http.Request, companyID, format string, size int) {
	if h.audits == nil {
		return
	}
	meta, _ := json.Marshal(map[string]any{"format": format, "bytes": size})
	_ = h.audits.Log(r.Context(), audit.Entry{
		CompanyID:    companyID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "plan.export",
		ResourceType: "plan",
		ResourceID:   companyID,
		Metadata:     meta,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
}

var (
	errCompanyMismatch = errors.New("company mismatch")
	errInvalidHorizon  = errors.New("horizon_years must be a positive integer")
)

func respondPlanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errCompanyMismatch):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, portfolio.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, portfolio.ErrEmptyCompanyID):
		http.Error(w, "company_id is required", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
