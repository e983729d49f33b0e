package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	reservationRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/reservation"
	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations/models"
	"github.com/1122padelclub/padel-app-sub002/pkg/metrics"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	settings        SettingsResolver
	publisher       Publisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         *metrics.Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	settings SettingsResolver,
	publisher Publisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		settings:        settings,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		metrics:         m,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// ListByDate получает бронирования заведения, начинающиеся в указанный день
// Записи, которые не удалось разобрать, не возвращаются, их количество есть в ответе
func (s *Service) ListByDate(ctx context.Context, venueID, date string) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByDate: fetching reservations for venue=%s, date=%s", venueID, date)

	settings, _, err := s.settings.Settings(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - settings: %v", ErrInternal, err)
	}

	day, err := settings.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	window, err := settings.DayWindow(venueID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records, err := s.reservationRepo.ListByWindow(ctx, window)
	if err != nil {
		s.logger.Error("ListByDate: repository error for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	type dated struct {
		record *domain.Reservation
		start  domain.NormalizedReservation
	}

	skipped := 0
	matched := make([]dated, 0, len(records))
	for _, record := range records {
		normalized, err := availability.Normalize(record, settings)
		if err != nil {
			skipped++
			s.logger.Warn("ListByDate: skipping reservation record: %v", err)
			continue
		}
		if availability.SameDay(normalized, day) {
			matched = append(matched, dated{record: record, start: normalized})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].start.Start.Equal(matched[j].start.Start) {
			return matched[i].start.Start.Before(matched[j].start.Start)
		}
		return matched[i].record.ID < matched[j].record.ID
	})

	result := make([]*domain.Reservation, len(matched))
	for i, m := range matched {
		result[i] = m.record
	}

	s.logger.Info("ListByDate: fetched %d reservations for venue=%s, date=%s (skipped %d)", len(result), venueID, date, skipped)
	return models.FromDomainReservationList(result, skipped), nil
}

// UpdateStatus меняет статус бронирования по жизненному циклу
// pending -> confirmed | seated | cancelled | no_show
// confirmed -> seated | completed | cancelled | no_show
// seated -> active | completed, active -> completed
// cancelled, no_show, completed - конечные статусы
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%s to status=%s", id, req.Status)

	next, ok := domain.ParseReservationStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var updated *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("UpdateStatus: reservation id=%s not found", id)
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем переход
		current, _ := domain.ParseReservationStatus(string(reservation.Status))
		if !current.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: reservation id=%s cannot move from %s to %s", id, current, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
		}

		// 3. Сохраняем новый статус
		if err := s.reservationRepo.UpdateStatus(txCtx, id, next); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		reservation.Status = next
		reservation.UpdatedAt = s.timeProvider.Now().UTC()
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated)

	s.logger.Info("UpdateStatus: reservation id=%s is now %s", id, next)
	return models.FromDomainReservation(updated), nil
}

// publish отправляет событие об изменении, ошибки только логируются
func (s *Service) publish(ctx context.Context, reservation *domain.Reservation) {
	event := events.ReservationChanged{
		ReservationID: reservation.ID,
		VenueID:       reservation.VenueID,
		Status:        string(reservation.Status),
		Date:          reservation.ReservationDate,
		OccurredAt:    s.timeProvider.Now().UTC(),
	}

	if settings, _, err := s.settings.Settings(ctx, reservation.VenueID); err == nil {
		if date, err := availability.LocalDate(reservation, settings); err == nil {
			event.Date = date
		}
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish change of reservation id=%s: %v", reservation.ID, err)
		return
	}
	s.metrics.RecordEvent("published")
}
