package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/service/occupancy"
)

const (
	msgMissingVenueID   = "ID заведения обязателен"
	msgMissingParams    = "параметры date, time и partySize обязательны"
	msgInvalidPartySize = "некорректный размер группы"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidQuery     = "некорректные параметры запроса"
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

// Handle GET /api/v1/venues/{venueId}/availability
// Query params: date, time, partySize (required), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	query := r.URL.Query()
	date, clock, rawParty := query.Get("date"), query.Get("time"), query.Get("partySize")
	if date == "" || clock == "" || rawParty == "" {
		h.logger.Warn("GET /venues/{id}/availability - Missing params: venue_id=%s", venueID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	partySize, err := strconv.Atoi(rawParty)
	if err != nil || partySize <= 0 {
		h.logger.Warn("GET /venues/{id}/availability - Invalid party size: %q", rawParty)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	duration := 0
	if raw := query.Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			h.logger.Warn("GET /venues/{id}/availability - Invalid duration: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	admission, err := h.service.CheckAvailability(r.Context(), venueID, date, clock, partySize, duration)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrInvalidQuery):
			h.logger.Warn("GET /venues/{id}/availability - Invalid query: venue_id=%s, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, occupancy.ErrDataUnavailable):
			h.logger.Error("GET /venues/{id}/availability - Data unavailable: venue_id=%s, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed to check availability: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	settings, _, err := h.service.Settings(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{id}/availability - Failed to resolve settings: venue_id=%s, error=%v", venueID, err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /venues/{id}/availability - venue_id=%s, %s %s, party=%d, available=%t",
		venueID, date, clock, partySize, admission.Available)
	handlers.RespondJSON(w, http.StatusOK, FromDomainAdmission(venueID, admission, settings.DefaultTableCapacity))
}
