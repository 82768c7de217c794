package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"taloyhtio-cloud/internal/auth"
	financeapp "taloyhtio-cloud/internal/finance/application"
	finance "taloyhtio-cloud/internal/finance/domain"
	"taloyhtio-cloud/internal/observability/metrics"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// Handler provides financing calculation endpoints.
type Handler struct {
	service *financeapp.FinancingService
}

// NewHandler constructs a handler.
func NewHandler(service *financeapp.FinancingService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("financing handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/financing subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/financing/options":
		h.handleOptions(w, r)
	case "/api/v1/financing/saving-plan":
		h.handleSavingPlan(w, r)
	case "/api/v1/financing/roi":
		h.handleROI(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID  string  `json:"company_id"`
		Cost       float64 `json:"cost"`
		AnnualRate float64 `json:"annual_rate"`
		TermYears  int     `json:"term_years"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondFinanceError(w, err)
		return
	}

	options, err := h.service.Options(r.Context(), companyID, body.Cost, body.AnnualRate, body.TermYears)
	if err != nil {
		metrics.IncFinancingCalc("options", metrics.ResultError)
		respondFinanceError(w, err)
		return
	}
	metrics.IncFinancingCalc("options", metrics.ResultSuccess)
	respondJSON(w, options)
}

func (h *Handler) handleSavingPlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID  string  `json:"company_id"`
		Target     float64 `json:"target"`
		AnnualRate float64 `json:"annual_rate"`
		Months     int     `json:"months"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondFinanceError(w, err)
		return
	}

	plan, err := h.service.SavingPlan(r.Context(), companyID, body.Target, body.AnnualRate, body.Months)
	if err != nil {
		metrics.IncFinancingCalc("saving_plan", metrics.ResultError)
		respondFinanceError(w, err)
		return
	}
	metrics.IncFinancingCalc("saving_plan", metrics.ResultSuccess)
	respondJSON(w, plan)
}

func (h *Handler) handleROI(w http.ResponseWriter, r *http.Request) {
	var scenario finance.InvestmentScenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := h.service.InvestmentROI(scenario)
	if err != nil {
		metrics.IncFinancingCalc("roi", metrics.ResultError)
		respondFinanceError(w, err)
		return
	}
	metrics.IncFinancingCalc("roi", metrics.ResultSuccess)
	respondJSON(w, result)
}

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

func respondFinanceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errCompanyMismatch):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, portfolio.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
