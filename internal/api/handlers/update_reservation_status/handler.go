package update_reservation_status

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations"
	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations/models"
)

const (
	msgMissingReservationID = "ID бронирования обязателен"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "неизвестный статус бронирования"
	msgInvalidTransition    = "переход в этот статус невозможен"
	msgNotFound             = "бронирование не найдено"
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

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := strings.TrimSpace(mux.Vars(r)["reservationId"])
	if reservationID == "" {
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), reservationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: reservation_id=%s, status=%s", reservationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to update status: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status updated: reservation_id=%s, status=%s", reservationID, reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
