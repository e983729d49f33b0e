package check_availability

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

type OccupancyService interface {
	CheckAvailability(ctx context.Context, venueID, date, clock string, partySize, durationMinutes int) (*domain.Admission, error)
	Settings(ctx context.Context, venueID string) (availability.Settings, *domain.VenueSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
