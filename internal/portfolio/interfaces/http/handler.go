package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"taloyhtio-cloud/internal/auth"
	portfolioapp "taloyhtio-cloud/internal/portfolio/application"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// Handler provides portfolio record-keeping endpoints.
type Handler struct {
	service *portfolioapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *portfolioapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("portfolio handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/components, /api/v1/renovations,
// /api/v1/snapshots and /api/v1/observations.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/components":
		switch r.Method {
		case http.MethodGet:
			h.handleListComponents(w, r)
		case http.MethodPost:
			h.handleRegisterComponent(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case r.URL.Path == "/api/v1/renovations":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handlePlanRenovation(w, r)
		return
	case strings.HasPrefix(r.URL.Path, "/api/v1/renovations/"):
		h.handleRenovationAction(w, r)
		return
	case r.URL.Path == "/api/v1/snapshots":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleCaptureSnapshot(w, r)
		return
	case r.URL.Path == "/api/v1/observations":
		switch r.Method {
		case http.MethodGet:
			h.handleListObservations(w, r)
		case http.MethodPost:
			h.handleRecordObservation(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case strings.HasPrefix(r.URL.Path, "/api/v1/observations/"):
		h.handleObservationAction(w, r)
		return
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
}

func (h *Handler) handleListComponents(w http.ResponseWriter, r *http.Request) {
	companyID, err := resolveCompanyID(r, r.URL.Query().Get("company_id"))
	if err != nil {
		respondCompanyError(w, err)
		return
	}
	list, err := h.service.ListComponents(r.Context(), companyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleRegisterComponent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID                    string  `json:"id"`
		CompanyID             string  `json:"company_id"`
		Name                  string  `json:"name"`
		Category              string  `json:"category"`
		InstalledYear         int     `json:"installed_year"`
		ExpectedLifespanYears int     `json:"expected_lifespan_years"`
		UnitCostPerArea       float64 `json:"unit_cost_per_area"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondCompanyError(w, err)
		return
	}

	saved, err := h.service.RegisterComponent(r.Context(), portfolio.Component{
		ID:                    body.ID,
		CompanyID:             companyID,
		Name:                  body.Name,
		Category:              body.Category,
		InstalledYear:         body.InstalledYear,
		ExpectedLifespanYears: body.ExpectedLifespanYears,
		UnitCostPerArea:       body.UnitCostPerArea,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handlePlanRenovation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID   string  `json:"company_id"`
		ComponentID string  `json:"component_id"`
		PlannedYear int     `json:"planned_year"`
		Cost        float64 `json:"cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondCompanyError(w, err)
		return
	}

	record, err := h.service.PlanRenovation(r.Context(), companyID, body.ComponentID, body.PlannedYear, body.Cost)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleRenovationAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/renovations/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id := parts[0]
	action := parts[1]

	switch action {
	case "complete":
		var body struct {
			Year int     `json:"year"`
			Cost float64 `json:"cost"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		record, err := h.service.CompleteRenovation(r.Context(), id, body.Year, body.Cost)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, record)
	case "assessments":
		var body struct {
			SeverityGrade int    `json:"severity_grade"`
			Note          string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		assessment, err := h.service.AttachAssessment(r.Context(), id, body.SeverityGrade, body.Note)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, assessment)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleListObservations(w http.ResponseWriter, r *http.Request) {
	companyID, err := resolveCompanyID(r, r.URL.Query().Get("company_id"))
	if err != nil {
		respondCompanyError(w, err)
		return
	}
	list, err := h.service.ListOpenObservations(r.Context(), companyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleRecordObservation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID string `json:"company_id"`
		Severity  int    `json:"severity"`
		Title     string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondCompanyError(w, err)
		return
	}

	saved, err := h.service.RecordObservation(r.Context(), portfolio.Observation{
		CompanyID: companyID,
		Severity:  body.Severity,
		Title:     body.Title,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handleObservationAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/observations/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[1] != "resolve" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if err := h.service.ResolveObservation(r.Context(), parts[0]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID      string  `json:"company_id"`
		MonthlyIncome  float64 `json:"monthly_income"`
		MonthlyTarget  float64 `json:"monthly_target"`
		ReserveFund    float64 `json:"reserve_fund"`
		EnergyCostDiff float64 `json:"energy_cost_diff"`
		UnpaidInvoices int     `json:"unpaid_invoices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondCompanyError(w, err)
		return
	}

	saved, err := h.service.CaptureSnapshot(r.Context(), portfolio.FinancialSnapshot{
		CompanyID:      companyID,
		MonthlyIncome:  body.MonthlyIncome,
		MonthlyTarget:  body.MonthlyTarget,
		ReserveFund:    body.ReserveFund,
		EnergyCostDiff: body.EnergyCostDiff,
		UnpaidInvoices: body.UnpaidInvoices,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

// resolveCompanyID reconciles the requested company with the authenticated
// one. An authenticated company always wins; a mismatch is rejected.
func resolveCompanyID(r *http.Request, requested string) (string, error) {
	authenticated := auth.CompanyIDFromContext(r.Context())
	if authenticated == "" {
		if requested == "" {
			return "", portfolio.ErrEmptyCompanyID
		}
		return requested, nil
	}
	if requested != "" && requested != authenticated {
		return "", errCompanyMismatch
	}
	return authenticated, nil
}

var errCompanyMismatch = errors.New("company mismatch")

func respondCompanyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errCompanyMismatch) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	http.Error(w, "company_id is required", http.StatusBadRequest)
}

func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, portfolio.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
