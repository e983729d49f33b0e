package get_day_stats

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/service/occupancy"
)

const (
	msgMissingVenueID = "ID заведения обязателен"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/stats
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /venues/{id}/stats - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	stats, err := h.service.DayStats(r.Context(), venueID, date)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrInvalidQuery):
			h.logger.Warn("GET /venues/{id}/stats - Invalid date: venue_id=%s, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, occupancy.ErrDataUnavailable):
			h.logger.Error("GET /venues/{id}/stats - Data unavailable: venue_id=%s, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /venues/{id}/stats - Failed to compute stats: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/stats - venue_id=%s, date=%s, reservations=%d, guests=%d",
		venueID, date, stats.TotalReservations, stats.TotalGuests)
	handlers.RespondJSON(w, http.StatusOK, FromDomainStats(venueID, stats))
}
