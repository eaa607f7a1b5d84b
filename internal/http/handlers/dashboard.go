package handlers

import (
	"errors"
	"net/http"

	"loyalty-order-services/internal/dashboard"
	"loyalty-order-services/pkg/response"
)

// GetDashboardStats serves the lightweight overview used by the landing
// cards.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		h.Logger.Error("dashboard stats failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard stats")
		return
	}
	response.Success(w, stats)
}

// GetComprehensiveStats serves the full dashboard: all panels computed in
// one pass over the selected streams and date range.
func (h *Handler) GetComprehensiveStats(w http.ResponseWriter, r *http.Request) {
	query := dashboard.StatsQuery{
		OrderType: readQueryString(r, "orderType"),
		StartDate: readQueryString(r, "startDate"),
		EndDate:   readQueryString(r, "endDate"),
	}

	stats, err := h.Dashboard.ComprehensiveStats(r.Context(), query)
	if err != nil {
		if errors.Is(err, dashboard.ErrInvalidArgument) {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		h.Logger.Error("comprehensive stats failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(w, stats)
}
