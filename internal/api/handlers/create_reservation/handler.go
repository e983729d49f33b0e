package create_reservation

import (
	"errors"
	"net/http"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	createReservation "github.com/1122padelclub/padel-app-sub002/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные бронирования"
	msgInvalidDate          = "дата бронирования в прошлом"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgVenueClosed          = "заведение закрыто в выбранную дату"
	msgOutsideServiceHours  = "выбранное время вне часов работы"
	msgTooLateToBook        = "слишком поздно для бронирования этого времени"
	msgSlotNotAvailable     = "нет свободных мест на выбранное время"
	msgTableNotAvailable    = "выбранный столик недоступен"
	msgReservationInProcess = "на эту дату уже создается бронирование, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: venue_id=%s, error=%v", req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in the past: venue_id=%s, date=%s", req.VenueID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: venue_id=%s, date=%s", req.VenueID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrVenueClosed):
			h.logger.Warn("POST /reservations - Venue closed: venue_id=%s, date=%s", req.VenueID, req.Date)
			handlers.RespondBadRequest(w, msgVenueClosed)

		case errors.Is(err, createReservation.ErrOutsideServiceHours):
			h.logger.Warn("POST /reservations - Outside service hours: venue_id=%s, %s %s", req.VenueID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgOutsideServiceHours)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: venue_id=%s, %s %s", req.VenueID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: venue_id=%s, %s %s, party=%d",
				req.VenueID, req.Date, req.Time, req.PartySize)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrTableNotAvailable):
			h.logger.Warn("POST /reservations - Table not available: venue_id=%s, error=%v", req.VenueID, err)
			handlers.RespondConflict(w, msgTableNotAvailable)

		case errors.Is(err, createReservation.ErrBusy):
			h.logger.Warn("POST /reservations - Lock busy: venue_id=%s, date=%s", req.VenueID, req.Date)
			w.Header().Set("Retry-After", "1")
			handlers.RespondConflict(w, msgReservationInProcess)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: venue_id=%s, error=%v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, venue_id=%s, table=%s",
		result.Reservation.ID, result.Reservation.VenueID, result.Reservation.TableNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
