package get_day_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/service/occupancy"
)

// UseCase use case для получения слотов дня, доступных для бронирования
type UseCase struct {
	occupancy    OccupancyService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(occupancyService OccupancyService, logger Logger) *UseCase {
	return &UseCase{
		occupancy:    occupancyService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: venue=%s, date=%s, party=%d", req.VenueID, req.Date, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки заведения
	settings, venue, err := uc.occupancy.Settings(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to resolve settings for venue=%s: %v", req.VenueID, err)
		return nil, mapError(err)
	}

	// 4. Валидация даты
	day, err := settings.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateDate(day, now, venue); err != nil {
		uc.logger.Warn("GetDaySlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Строим сетку слотов с занятостью
	schedule, err := uc.occupancy.DaySlots(ctx, req.VenueID, req.Date, req.PartySize)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to build slots: %v", err)
		return nil, mapError(err)
	}

	// 6. Слоты раньше minBookingNoticeMinutes от текущего момента недоступны
	earliest := now.Add(time.Duration(venue.MinBookingNoticeMinutes) * time.Minute)
	bookable := 0
	for i := range schedule.Slots {
		slot := &schedule.Slots[i]
		if slot.Snapshot != nil && slot.Snapshot.Time.Before(earliest) {
			slot.Bookable = false
		}
		if slot.Bookable {
			bookable++
		}
	}

	uc.logger.Info("GetDaySlots: venue=%s date=%s, %d of %d slots bookable",
		req.VenueID, req.Date, bookable, len(schedule.Slots))

	return &Response{
		VenueID:        schedule.VenueID,
		Date:           schedule.Date,
		Closed:         schedule.Closed,
		Slots:          schedule.Slots,
		SkippedRecords: schedule.SkippedRecords,
	}, nil
}

// mapError переводит ошибки сервиса занятости в ошибки usecase
func mapError(err error) error {
	switch {
	case errors.Is(err, occupancy.ErrInvalidQuery):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, occupancy.ErrDataUnavailable):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
