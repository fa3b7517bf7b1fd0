package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AnalyticsHandler handles the admin dashboard report.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("handler", "analytics").Logger(),
	}
}

// Report handles GET /api/analytics requests (admin only). The range query
// parameter defaults to month.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	timeRange := model.TimeRange(r.URL.Query().Get("range"))
	if timeRange == "" {
		timeRange = model.RangeMonth
	}
	if !timeRange.Valid() {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationError, "Invalid time range", h.logger)
		return
	}

	report, err := h.service.Report(r.Context(), timeRange)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
