package venues

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// VenueRepository интерфейс репозитория настроек заведений
type VenueRepository interface {
	GetByVenueID(ctx context.Context, venueID string) (*domain.VenueSettings, error)
	Upsert(ctx context.Context, settings *domain.VenueSettings) (*domain.VenueSettings, error)
}

// Invalidator сбрасывает кешированные данные заведения
type Invalidator interface {
	Invalidate(venueID string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
