package get_slot_occupancy

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

type OccupancyService interface {
	SlotOccupancy(ctx context.Context, venueID, date, clock string) (*domain.OccupancySnapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
