package occupancy

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
)

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	ListByVenue(ctx context.Context, venueID string) ([]*domain.Table, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListByWindow(ctx context.Context, window domain.ReservationWindow) ([]*domain.Reservation, error)
}

// VenueRepository интерфейс репозитория настроек заведений
type VenueRepository interface {
	GetByVenueID(ctx context.Context, venueID string) (*domain.VenueSettings, error)
}

// Subscriber источник событий об изменении бронирований
type Subscriber interface {
	Subscribe(ctx context.Context, handler events.Handler) (func(), error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
