package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	getDaySlots "github.com/1122padelclub/padel-app-sub002/internal/usecase/get_day_slots"
)

const (
	msgMissingVenueID   = "ID заведения обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidPartySize = "некорректный размер группы"
	msgInvalidInput     = "некорректные параметры запроса"
	msgInvalidDate      = "дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/slots
// Query params: date (required, YYYY-MM-DD), partySize (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /venues/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	partySize := 0
	if raw := r.URL.Query().Get("partySize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/slots - Invalid party size: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPartySize)
			return
		}
		partySize = n
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySlots.Request{
		VenueID:   venueID,
		Date:      date,
		PartySize: partySize,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/slots - Invalid input: venue_id=%s, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getDaySlots.ErrInvalidDate):
			h.logger.Warn("GET /venues/{id}/slots - Date in the past: venue_id=%s, date=%s", venueID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDaySlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /venues/{id}/slots - Date too far: venue_id=%s, date=%s", venueID, date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getDaySlots.ErrUnavailable):
			h.logger.Error("GET /venues/{id}/slots - Data unavailable: venue_id=%s, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /venues/{id}/slots - Failed to get slots: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/slots - Slots retrieved: venue_id=%s, date=%s, slots_count=%d",
		venueID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
