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
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
	scoringapp "taloyhtio-cloud/internal/scoring/application"
)

// Handler provides scoring and grading endpoints.
type Handler struct {
	service *scoringapp.ScoringService
	audits  audit.Logger
}

// NewHandler constructs a handler. The audit logger may be nil.
func NewHandler(service *scoringapp.ScoringService, audits audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("scoring handler: nil service")
	}
	return &Handler{service: service, audits: audits}, nil
}

// ServeHTTP handles /api/v1/scores subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/scores/run":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleRun(w, r)
	case "/api/v1/scores/latest":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleLatest(w, r)
	case "/api/v1/scores/history":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleHistory(w, r)
	case "/api/v1/scores/grade":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleGrade(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID string `json:"company_id"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	companyID, err := resolveCompanyID(r, body.CompanyID)
	if err != nil {
		respondScoreError(w, err)
		return
	}

	started := time.Now()
	score, err := h.service.RunScoring(r.Context(), companyID)
	if err != nil {
		metrics.ObserveScoreRun(metrics.ResultError, time.Since(started))
		respondScoreError(w, err)
		return
	}
	metrics.ObserveScoreRun(metrics.ResultSuccess, time.Since(started))
	h.auditRun(r, companyID, score.Total)
	respondJSON(w, score)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	companyID, err := resolveCompanyID(r, r.URL.Query().Get("company_id"))
	if err != nil {
		respondScoreError(w, err)
		return
	}
	score, err := h.service.Latest(r.Context(), companyID)
	if err != nil {
		respondScoreError(w, err)
		return
	}
	if score == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	respondJSON(w, score)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	companyID, err := resolveCompanyID(r, r.URL.Query().Get("company_id"))
	if err != nil {
		respondScoreError(w, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	history, err := h.service.History(r.Context(), companyID, limit)
	if err != nil {
		respondScoreError(w, err)
		return
	}
	respondJSON(w, history)
}

func (h *Handler) handleGrade(w http.ResponseWriter, r *http.Request) {
	companyID, err := resolveCompanyID(r, r.URL.Query().Get("company_id"))
	if err != nil {
		respondScoreError(w, err)
		return
	}
	grade, err := h.service.Grade(r.Context(), companyID)
	if err != nil {
		respondScoreError(w, err)
		return
	}
	respondJSON(w, grade)
}

func (h *Handler) auditRun(r *http.Request, companyID string, total int) {
	if h.audits == nil {
		return
	}
	meta, _ := json.Marshal(map[string]any{"total": total})
	_ = h.audits.Log(r.Context(), audit.Entry{
		CompanyID:    companyID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "scores.run",
		ResourceType: "score",
		ResourceID:   companyID,
		Metadata:     meta,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
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

func respondScoreError(w http.ResponseWriter, err error) {
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

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
