package get_day_stats

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

type OccupancyService interface {
	DayStats(ctx context.Context, venueID, date string) (*domain.DayOccupancyStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
