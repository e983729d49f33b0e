package occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/metrics"
)

const reasonClosed = "venue is closed on this day"

// Service сервис занятости и доступности столиков
// Каждый запрос строит новое представление движка поверх последнего снапшота заведения
type Service struct {
	tableRepo       TableRepository
	reservationRepo ReservationRepository
	venueRepo       VenueRepository
	defaults        availability.Settings
	cache           *cache.Cache
	metrics         *metrics.Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса занятости
// snapshots может быть nil, тогда каждый запрос читает хранилище
func NewService(
	tableRepo TableRepository,
	reservationRepo ReservationRepository,
	venueRepo VenueRepository,
	defaults availability.Settings,
	snapshots *cache.Cache,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		venueRepo:       venueRepo,
		defaults:        defaults,
		cache:           snapshots,
		metrics:         m,
		logger:          logger,
	}
}

// ActiveTables возвращает активные столики заведения в порядке отображения
func (s *Service) ActiveTables(ctx context.Context, venueID string) ([]*domain.Table, error) {
	tables, err := s.tableRepo.ListByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("ActiveTables: failed to list tables for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: ActiveTables - repository error: %v", ErrDataUnavailable, err)
	}
	return availability.ActiveTables(tables, venueID), nil
}

// SlotOccupancy возвращает занятость заведения на дату и время
func (s *Service) SlotOccupancy(ctx context.Context, venueID, date, clock string) (*domain.OccupancySnapshot, error) {
	view, _, err := s.view(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	snapshot, err := view.SlotOccupancy(date, clock)
	if err != nil {
		return nil, queryError(err)
	}

	s.logger.Info("SlotOccupancy: venue=%s %s %s occupied %d/%d tables, %d/%d seats",
		venueID, date, clock, snapshot.OccupiedTables, snapshot.TotalTables, snapshot.OccupiedCapacity, snapshot.TotalCapacity)
	return snapshot, nil
}

// DaySlots возвращает сетку слотов дня с занятостью
// partySize > 0 отмечает слоты, куда группа помещается, иначе слоты, где остались места
func (s *Service) DaySlots(ctx context.Context, venueID, date string, partySize int) (*domain.DaySchedule, error) {
	if partySize < 0 {
		return nil, fmt.Errorf("%w: party size must not be negative", ErrInvalidQuery)
	}

	view, snap, err := s.view(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	schedule := &domain.DaySchedule{
		VenueID:        venueID,
		Date:           date,
		Slots:          []domain.SlotOccupancy{},
		SkippedRecords: view.Skipped(),
	}

	day, err := snap.settings.ParseDate(date)
	if err != nil {
		return nil, queryError(err)
	}
	if snap.venue.IsClosedOn(day) {
		s.logger.Info("DaySlots: venue=%s is closed on %s", venueID, date)
		schedule.Closed = true
		return schedule, nil
	}

	grid, err := view.DayGrid(date)
	if err != nil {
		return nil, queryError(err)
	}

	for _, t := range grid {
		snapshot := view.OccupancyAt(t)
		bookable := !snapshot.IsFull()
		if partySize > 0 {
			admission, err := view.AdmitAt(t, partySize, 0)
			if err != nil {
				return nil, queryError(err)
			}
			bookable = admission.Available
		}

		schedule.Slots = append(schedule.Slots, domain.SlotOccupancy{
			Time:     t.Format(domain.TimeFormat),
			Bookable: bookable,
			Snapshot: snapshot,
		})
	}

	s.logger.Info("DaySlots: venue=%s date=%s generated %d slots", venueID, date, len(schedule.Slots))
	return schedule, nil
}

// CheckAvailability проверяет, можно ли посадить группу на дату и время
func (s *Service) CheckAvailability(ctx context.Context, venueID, date, clock string, partySize, durationMinutes int) (*domain.Admission, error) {
	view, snap, err := s.view(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	admission, err := view.IsSlotAvailable(date, clock, partySize, durationMinutes)
	if err != nil {
		return nil, queryError(err)
	}

	if day, err := snap.settings.ParseDate(date); err == nil && snap.venue.IsClosedOn(day) {
		admission.Available = false
		admission.Path = domain.AdmissionNone
		admission.BestTable = nil
		admission.CandidateTables = []*domain.Table{}
		admission.Reason = reasonClosed
	}

	s.metrics.RecordAdmission(admission.Available)
	s.logger.Info("CheckAvailability: venue=%s %s %s party=%d available=%t (%s)",
		venueID, date, clock, partySize, admission.Available, admission.Reason)
	return admission, nil
}

// DayStats возвращает сводку занятости за день
func (s *Service) DayStats(ctx context.Context, venueID, date string) (*domain.DayOccupancyStats, error) {
	view, _, err := s.view(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	stats, err := view.DayStats(date)
	if err != nil {
		return nil, queryError(err)
	}
	return stats, nil
}

// queryError переводит ошибки движка в ошибки сервиса
func queryError(err error) error {
	if errors.Is(err, availability.ErrInvalidQuery) {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
}
