package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/internal/infra/lock"
	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
	"github.com/1122padelclub/padel-app-sub002/pkg/metrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	tableRepo       TableRepository
	reservationRepo ReservationRepository
	settings        SettingsResolver
	locker          Locker
	publisher       Publisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         *metrics.Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tableRepo TableRepository,
	reservationRepo ReservationRepository,
	settings SettingsResolver,
	locker Locker,
	publisher Publisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		settings:        settings,
		locker:          locker,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		metrics:         m,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и запись выполняются под блокировкой дня заведения
// в сериализуемой транзакции, поэтому два запроса не займут одно место
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: venue=%s, date=%s, time=%s, party=%d, duration=%d",
		req.VenueID, req.Date, req.Time, req.PartySize, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки заведения
	settings, venue, err := uc.settings.Settings(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to resolve settings for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	day, err := settings.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := settings.SlotInstant(req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Валидация даты и времени с учетом настроек
	if err := validateDate(day, now, venue); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	open, err := withinServiceHours(settings, day, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !open {
		uc.logger.Warn("CreateReservation: %s %s is outside service hours %s-%s",
			req.Date, req.Time, settings.OpenTime, settings.CloseTime)
		return nil, ErrOutsideServiceHours
	}

	if err := validateStart(start, now, venue.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateReservation: booking time validation failed: %v", err)
		return nil, err
	}

	// 5. Захватываем блокировку дня заведения
	release, err := uc.locker.Acquire(ctx, req.VenueID, req.Date)
	if err != nil {
		if errors.Is(err, lock.ErrLockBusy) {
			uc.logger.Warn("CreateReservation: venue=%s date=%s is locked: %v", req.VenueID, req.Date, err)
			return nil, ErrBusy
		}
		uc.logger.Error("CreateReservation: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}

	var (
		result    *domain.Reservation
		admission *domain.Admission
	)

	// 6. Выполняем проверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Читаем актуальные столики и бронирования
		tables, err := uc.tableRepo.ListByVenue(txCtx, req.VenueID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list tables: %v", err)
			return fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
		}

		window, err := settings.DayWindow(req.VenueID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		records, err := uc.reservationRepo.ListByWindow(txCtx, window)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 6.2. Проверяем доступность
		view := availability.NewEngine(settings, uc.logger).NewView(req.VenueID, tables, records)
		admission, err = view.AdmitAt(start, req.PartySize, req.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 6.3. Выбираем столик
		table, err := pickTable(admission, req.TableID)
		if err != nil {
			uc.logger.Warn("CreateReservation: venue=%s %s %s party=%d rejected: %s",
				req.VenueID, req.Date, req.Time, req.PartySize, admission.Reason)
			return err
		}

		// 6.4. Создаем бронирование
		reservation := &domain.Reservation{
			VenueID:         req.VenueID,
			TableNumber:     domain.UnassignedTableLabel,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
			PartySize:       req.PartySize,
			ReservationDate: req.Date,
			ReservationTime: req.Time,
			StartAt:         ptr.Ptr(admission.Start.UTC()),
			EndAt:           ptr.Ptr(admission.End.UTC()),
			DurationMinutes: int(admission.End.Sub(admission.Start) / time.Minute),
			Status:          venue.InitialStatus(),
			Notes:           req.Notes,
		}
		if table != nil {
			reservation.TableID = ptr.Ptr(table.ID)
			reservation.TableNumber = table.Number
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	// 7. Освобождаем блокировку после фиксации транзакции
	release()

	if admission != nil {
		uc.metrics.RecordAdmission(err == nil)
	}
	if err != nil {
		return nil, err
	}

	// 8. Оповещаем другие экземпляры
	uc.publish(ctx, result, now)

	uc.logger.Info("CreateReservation: created reservation id=%s, venue=%s, table=%s, status=%s",
		result.ID, result.VenueID, result.TableNumber, result.Status)
	return &Response{Reservation: result, Path: admission.Path}, nil
}

// pickTable выбирает столик для бронирования
// Запрошенный столик должен быть среди подходящих, иначе берется лучший
// nil без ошибки означает посадку из общей вместимости
func pickTable(admission *domain.Admission, requested *string) (*domain.Table, error) {
	if requested != nil && strings.TrimSpace(*requested) != "" {
		id := strings.TrimSpace(*requested)
		for _, table := range admission.CandidateTables {
			if table.ID == id {
				return table, nil
			}
		}
		return nil, fmt.Errorf("%w: table %s", ErrTableNotAvailable, id)
	}

	if !admission.Available {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotAvailable, admission.Reason)
	}
	return admission.BestTable, nil
}

// publish отправляет событие о новом бронировании, ошибки только логируются
func (uc *UseCase) publish(ctx context.Context, reservation *domain.Reservation, now time.Time) {
	event := events.ReservationChanged{
		ReservationID: reservation.ID,
		VenueID:       reservation.VenueID,
		Status:        string(reservation.Status),
		Date:          reservation.ReservationDate,
		OccurredAt:    now.UTC(),
	}

	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateReservation: failed to publish reservation id=%s: %v", reservation.ID, err)
		return
	}
	uc.metrics.RecordEvent("published")
}
