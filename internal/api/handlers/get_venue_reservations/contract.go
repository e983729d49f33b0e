package get_venue_reservations

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	ListByDate(ctx context.Context, venueID, date string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
