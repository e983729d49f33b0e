package get_reservation

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, id string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
