package occupancy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	venueRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/venue"
)

// snapshot последние данные заведения на день
type snapshot struct {
	venue        *domain.VenueSettings
	settings     availability.Settings
	tables       []*domain.Table
	reservations []*domain.Reservation
}

func cacheKey(venueID, date string) string {
	return venueID + "|" + date
}

// Settings возвращает настройки движка для заведения:
// значения конфигурации, перекрытые настройками из базы
// Если настроек в базе нет, возвращаются пустые настройки заведения
func (s *Service) Settings(ctx context.Context, venueID string) (availability.Settings, *domain.VenueSettings, error) {
	venue, err := s.venueRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if !errors.Is(err, venueRepo.ErrSettingsNotFound) {
			s.logger.Error("Settings: failed to get settings for venue=%s: %v", venueID, err)
			return availability.Settings{}, nil, fmt.Errorf("%w: Settings - repository error: %v", ErrDataUnavailable, err)
		}
		venue = &domain.VenueSettings{VenueID: venueID}
	}

	settings, err := s.defaults.WithVenue(venue)
	if err != nil {
		s.logger.Error("Settings: venue=%s has invalid settings: %v", venueID, err)
		return availability.Settings{}, nil, fmt.Errorf("%w: Settings - %v", ErrDataUnavailable, err)
	}

	return settings, venue, nil
}

// load получает снапшот из кеша или из хранилища
func (s *Service) load(ctx context.Context, venueID, date string) (*snapshot, bool, error) {
	key := cacheKey(venueID, date)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.metrics.RecordCache(true)
			return cached.(*snapshot), true, nil
		}
		s.metrics.RecordCache(false)
	}

	settings, venue, err := s.Settings(ctx, venueID)
	if err != nil {
		return nil, false, err
	}

	window, err := settings.DayWindow(venueID, date)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	tables, err := s.tableRepo.ListByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("load: failed to list tables for venue=%s: %v", venueID, err)
		return nil, false, fmt.Errorf("%w: load - tables: %v", ErrDataUnavailable, err)
	}

	reservations, err := s.reservationRepo.ListByWindow(ctx, window)
	if err != nil {
		s.logger.Error("load: failed to list reservations for venue=%s date=%s: %v", venueID, date, err)
		return nil, false, fmt.Errorf("%w: load - reservations: %v", ErrDataUnavailable, err)
	}

	snap := &snapshot{
		venue:        venue,
		settings:     settings,
		tables:       tables,
		reservations: reservations,
	}
	if s.cache != nil {
		s.cache.Set(key, snap, cache.DefaultExpiration)
	}

	return snap, false, nil
}

// view строит представление движка поверх снапшота
func (s *Service) view(ctx context.Context, venueID, date string) (*availability.View, *snapshot, error) {
	snap, cached, err := s.load(ctx, venueID, date)
	if err != nil {
		return nil, nil, err
	}

	view := availability.NewEngine(snap.settings, s.logger).NewView(venueID, snap.tables, snap.reservations)
	if !cached {
		s.metrics.RecordSkipped(venueID, view.Skipped())
	}
	return view, snap, nil
}

// Invalidate сбрасывает кешированные снапшоты заведения
func (s *Service) Invalidate(venueID string) {
	if s.cache == nil {
		return
	}

	prefix := cacheKey(venueID, "")
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}
