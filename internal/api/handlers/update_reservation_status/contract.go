package update_reservation_status

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
