package create_reservation

import (
	"context"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
)

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	ListByVenue(ctx context.Context, venueID string) ([]*domain.Table, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListByWindow(ctx context.Context, window domain.ReservationWindow) ([]*domain.Reservation, error)
}

// SettingsResolver возвращает действующие настройки заведения
type SettingsResolver interface {
	Settings(ctx context.Context, venueID string) (availability.Settings, *domain.VenueSettings, error)
}

// Locker блокировка дня заведения на время проверки и записи
type Locker interface {
	Acquire(ctx context.Context, venueID, date string) (func(), error)
}

// Publisher публикует события об изменении бронирований
type Publisher interface {
	Publish(ctx context.Context, event events.ReservationChanged) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
