package get_venue_reservations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations"
)

const (
	msgMissingVenueID = "ID заведения обязателен"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/reservations
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /venues/{id}/reservations - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	list, err := h.service.ListByDate(r.Context(), venueID, date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/reservations - Invalid date: venue_id=%s, date=%s", venueID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /venues/{id}/reservations - Failed to list reservations: venue_id=%s, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/reservations - venue_id=%s, date=%s, count=%d, skipped=%d",
		venueID, date, len(list.Reservations), list.SkippedRecords)
	handlers.RespondJSON(w, http.StatusOK, list)
}
