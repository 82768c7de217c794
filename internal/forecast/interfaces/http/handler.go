package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"taloyhtio-cloud/internal/auth"
	forecastapp "taloyhtio-cloud/internal/forecast/application"
	"taloyhtio-cloud/internal/observability/metrics"
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

// Handler provides the forecast simulation endpoint.
type Handler struct {
	service *forecastapp.ForecastService
}

// NewHandler constructs a handler.
func NewHandler(service *forecastapp.ForecastService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("forecast handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/forecast.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/forecast" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	companyID := r.URL.Query().Get("company_id")
	if authenticated := auth.CompanyIDFromContext(r.Context()); authenticated != "" {
		if companyID != "" && companyID != authenticated {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		companyID = authenticated
	}

	horizon := 0
	if raw := r.URL.Query().Get("horizon_years"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "horizon_years must be a positive integer", http.StatusBadRequest)
			return
		}
		horizon = parsed
	}

	started := time.Now()
	paths, err := h.service.Run(r.Context(), companyID, horizon)
	if err != nil {
		metrics.ObserveForecastRun(metrics.ResultError, time.Since(started))
		switch {
		case errors.Is(err, portfolio.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, portfolio.ErrEmptyCompanyID):
			http.Error(w, "company_id is required", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	metrics.ObserveForecastRun(metrics.ResultSuccess, time.Since(started))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(paths)
}
