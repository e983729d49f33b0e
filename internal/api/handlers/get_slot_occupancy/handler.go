package get_slot_occupancy

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
	msgMissingTime    = "время обязательно"
	msgInvalidQuery   = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
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

// Handle GET /api/v1/venues/{venueId}/occupancy
// Query params: date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /venues/{id}/occupancy - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	clock := r.URL.Query().Get("time")
	if clock == "" {
		h.logger.Warn("GET /venues/{id}/occupancy - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	snapshot, err := h.service.SlotOccupancy(r.Context(), venueID, date, clock)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrInvalidQuery):
			h.logger.Warn("GET /venues/{id}/occupancy - Invalid query: venue_id=%s, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, occupancy.ErrDataUnavailable):
			h.logger.Error("GET /venues/{id}/occupancy - Data unavailable: venue_id=%s, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /venues/{id}/occupancy - Failed to compute occupancy: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/occupancy - venue_id=%s, %s %s, occupied_tables=%d/%d",
		venueID, date, clock, snapshot.OccupiedTables, snapshot.TotalTables)
	handlers.RespondJSON(w, http.StatusOK, SlotOccupancyResponse{
		VenueID:   venueID,
		Date:      date,
		Time:      clock,
		Occupancy: handlers.FromDomainSnapshot(snapshot),
	})
}
