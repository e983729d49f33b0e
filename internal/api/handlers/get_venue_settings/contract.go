package get_venue_settings

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/service/venues/models"
)

type VenueService interface {
	Get(ctx context.Context, venueID string) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
