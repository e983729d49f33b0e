package get_day_slots

import (
	"context"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// OccupancyService сервис занятости заведения
type OccupancyService interface {
	Settings(ctx context.Context, venueID string) (availability.Settings, *domain.VenueSettings, error)
	DaySlots(ctx context.Context, venueID, date string, partySize int) (*domain.DaySchedule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
