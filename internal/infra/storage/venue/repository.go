package venue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/psqlbuilder"
)

const tableName = "venue_settings"

var columns = []string{
	"venue_id",
	"timezone",
	"open_time",
	"close_time",
	"slot_duration_minutes",
	"default_duration_minutes",
	"default_table_capacity",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"require_specific_table",
	"auto_confirm",
	"closed_weekdays",
	"created_at",
	"updated_at",
}

// upsertSuffix обновляет существующую строку настроек заведения
const upsertSuffix = `ON CONFLICT (venue_id) DO UPDATE SET
	timezone = EXCLUDED.timezone,
	open_time = EXCLUDED.open_time,
	close_time = EXCLUDED.close_time,
	slot_duration_minutes = EXCLUDED.slot_duration_minutes,
	default_duration_minutes = EXCLUDED.default_duration_minutes,
	default_table_capacity = EXCLUDED.default_table_capacity,
	advance_booking_days = EXCLUDED.advance_booking_days,
	min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
	require_specific_table = EXCLUDED.require_specific_table,
	auto_confirm = EXCLUDED.auto_confirm,
	closed_weekdays = EXCLUDED.closed_weekdays,
	updated_at = NOW()
RETURNING created_at, updated_at`

// Repository репозиторий настроек заведений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenueID получает настройки заведения
// Отсутствие строки - не ошибка данных: сервис подставляет значения по умолчанию
func (r *Repository) GetByVenueID(ctx context.Context, venueID string) (*domain.VenueSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings             domain.VenueSettings
		closedWeekdays       []int64
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.VenueID,
		&settings.Timezone,
		&settings.OpenTime,
		&settings.CloseTime,
		&settings.SlotDurationMinutes,
		&settings.DefaultDurationMinutes,
		&settings.DefaultTableCapacity,
		&settings.AdvanceBookingDays,
		&settings.MinBookingNoticeMinutes,
		&settings.RequireSpecificTable,
		&settings.AutoConfirm,
		pq.Array(&closedWeekdays),
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - scan settings: %v", ErrScanRow, err)
	}

	settings.ClosedWeekdays = toWeekdays(closedWeekdays)
	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или полностью перезаписывает настройки заведения
func (r *Repository) Upsert(ctx context.Context, settings *domain.VenueSettings) (*domain.VenueSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns[:len(columns)-2]...).
		Values(
			settings.VenueID,
			settings.Timezone,
			settings.OpenTime,
			settings.CloseTime,
			settings.SlotDurationMinutes,
			settings.DefaultDurationMinutes,
			settings.DefaultTableCapacity,
			settings.AdvanceBookingDays,
			settings.MinBookingNoticeMinutes,
			settings.RequireSpecificTable,
			settings.AutoConfirm,
			pq.Array(fromWeekdays(settings.ClosedWeekdays)),
		).
		Suffix(upsertSuffix).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

func toWeekdays(values []int64) []time.Weekday {
	weekdays := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		if v >= int64(time.Sunday) && v <= int64(time.Saturday) {
			weekdays = append(weekdays, time.Weekday(v))
		}
	}
	return weekdays
}

func fromWeekdays(weekdays []time.Weekday) []int64 {
	values := make([]int64, len(weekdays))
	for i, wd := range weekdays {
		values[i] = int64(wd)
	}
	return values
}
