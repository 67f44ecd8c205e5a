package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/metrics"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	period := stats.Period(chi.URLParam(r, "period"))

	report, err := h.svc.GetStats(r.Context(), period)
	switch {
	case err == ErrInvalidPeriod:
		metrics.RequestsTotal.WithLabelValues(string(period), "404").Inc()
		http.NotFound(w, r)
		return
	case err != nil:
		metrics.RequestsTotal.WithLabelValues(string(period), "500").Inc()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	metrics.RequestsTotal.WithLabelValues(string(period), "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
