package get_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations"
)

const (
	msgMissingReservationID = "ID бронирования обязателен"
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

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := strings.TrimSpace(mux.Vars(r)["reservationId"])
	if reservationID == "" {
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	reservation, err := h.service.GetByID(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id} - Reservation retrieved: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
