package venues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	venueRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/venue"
	"github.com/1122padelclub/padel-app-sub002/internal/service/venues/models"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

// Service сервис настроек заведений
type Service struct {
	venueRepo   VenueRepository
	defaults    availability.Settings
	invalidator Invalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса настроек
// invalidator может быть nil
func NewService(venueRepo VenueRepository, defaults availability.Settings, invalidator Invalidator, logger Logger) *Service {
	return &Service{
		venueRepo:   venueRepo,
		defaults:    defaults,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Get возвращает действующие настройки заведения
// Если настроек нет, возвращаются значения сервиса по умолчанию
func (s *Service) Get(ctx context.Context, venueID string) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for venue=%s", venueID)

	stored, err := s.load(ctx, venueID)
	if err != nil {
		return nil, err
	}

	return s.response(venueID, stored)
}

// Update частично обновляет настройки заведения
func (s *Service) Update(ctx context.Context, venueID string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for venue=%s", venueID)

	if venueID == "" {
		return nil, fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}

	// 1. Получаем текущие настройки
	stored, err := s.load(ctx, venueID)
	if err != nil {
		return nil, err
	}
	settings := &domain.VenueSettings{VenueID: venueID}
	if stored != nil {
		copied := *stored
		settings = &copied
	}

	// 2. Применяем изменения и проверяем
	req.ApplyTo(settings)
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for venue=%s: %v", venueID, err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.venueRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 4. Снапшоты заведения посчитаны со старыми настройками
	if s.invalidator != nil {
		s.invalidator.Invalidate(venueID)
	}

	s.logger.Info("Update: successfully updated settings for venue=%s", venueID)
	return s.response(venueID, saved)
}

func (s *Service) load(ctx context.Context, venueID string) (*domain.VenueSettings, error) {
	stored, err := s.venueRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrSettingsNotFound) {
			return nil, nil
		}
		s.logger.Error("load: repository error for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}
	return stored, nil
}

// response заполняет незаданные значения настройками сервиса
func (s *Service) response(venueID string, stored *domain.VenueSettings) (*models.SettingsResponse, error) {
	venue := stored
	if venue == nil {
		venue = &domain.VenueSettings{VenueID: venueID}
	}

	effective, err := s.defaults.WithVenue(venue)
	if err != nil {
		s.logger.Error("response: venue=%s has invalid stored settings: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &models.SettingsResponse{
		VenueID:                 venueID,
		Timezone:                effective.Location.String(),
		OpenTime:                effective.OpenTime,
		CloseTime:               effective.CloseTime,
		SlotDurationMinutes:     effective.SlotDurationMinutes,
		DefaultDurationMinutes:  effective.DefaultDurationMinutes,
		DefaultTableCapacity:    effective.DefaultTableCapacity,
		AdvanceBookingDays:      venue.AdvanceBookingDays,
		MinBookingNoticeMinutes: venue.MinBookingNoticeMinutes,
		RequireSpecificTable:    effective.RequireSpecificTable,
		AutoConfirm:             venue.AutoConfirm,
		ClosedWeekdays:          make([]int, 0, len(venue.ClosedWeekdays)),
		IsDefault:               stored == nil,
	}
	for _, wd := range venue.ClosedWeekdays {
		resp.ClosedWeekdays = append(resp.ClosedWeekdays, int(wd))
	}
	if stored != nil && !stored.UpdatedAt.IsZero() {
		updatedAt := stored.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp, nil
}

// validateSettings проверяет границы значений
// Нулевые значения длительностей и вместимости означают значение сервиса
func validateSettings(s *domain.VenueSettings) error {
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
		}
	}

	for name, value := range map[string]string{"openTime": s.OpenTime, "closeTime": s.CloseTime} {
		if value == "" {
			continue
		}
		if err := types.TimeString(value).Validate(); err != nil {
			return fmt.Errorf("%w: %s must be HH:MM", ErrInvalidInput, name)
		}
	}

	if s.SlotDurationMinutes != 0 &&
		(s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if s.DefaultDurationMinutes != 0 &&
		(s.DefaultDurationMinutes < domain.MinDurationMinutes || s.DefaultDurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if s.DefaultTableCapacity != 0 &&
		(s.DefaultTableCapacity < domain.MinTableCapacity || s.DefaultTableCapacity > domain.MaxTableCapacity) {
		return fmt.Errorf("%w: defaultTableCapacity must be between %d and %d",
			ErrInvalidInput, domain.MinTableCapacity, domain.MaxTableCapacity)
	}

	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if s.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	seen := make(map[time.Weekday]bool, len(s.ClosedWeekdays))
	for _, wd := range s.ClosedWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: closedWeekdays must be between 0 and 6", ErrInvalidInput)
		}
		if seen[wd] {
			return fmt.Errorf("%w: closedWeekdays contains %d twice", ErrInvalidInput, wd)
		}
		seen[wd] = true
	}
	if len(seen) == 7 {
		return fmt.Errorf("%w: venue cannot be closed every day", ErrInvalidInput)
	}

	return nil
}
