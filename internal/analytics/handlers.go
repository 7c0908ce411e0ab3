package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	typeanalytics "github.com/antonminaichev/flower-shop/internal/types/analytics"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createReportReq struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		http.Error(w, "invalid period_start", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		http.Error(w, "invalid period_end", http.StatusBadRequest)
		return
	}

	report, err := h.svc.CreateReport(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListReports(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []typeanalytics.Report{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}
