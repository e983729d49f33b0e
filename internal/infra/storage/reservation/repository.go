package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"venue_id",
	"table_id",
	"table_number",
	"customer_name",
	"customer_phone",
	"customer_email",
	"party_size",
	"reservation_date",
	"reservation_time",
	"start_at",
	"end_at",
	"duration_minutes",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями столиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если ID не задан, генерируется UUID.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"venue_id",
			"table_id",
			"table_number",
			"customer_name",
			"customer_phone",
			"customer_email",
			"party_size",
			"reservation_date",
			"reservation_time",
			"start_at",
			"end_at",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			reservation.ID,
			reservation.VenueID,
			reservation.TableID,
			reservation.TableNumber,
			reservation.CustomerName,
			reservation.CustomerPhone,
			reservation.CustomerEmail,
			reservation.PartySize,
			reservation.ReservationDate,
			reservation.ReservationTime,
			reservation.StartAt,
			reservation.EndAt,
			reservation.DurationMinutes,
			reservation.Status,
			reservation.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}

	return reservations[0], nil
}

// ListByWindow получает бронирования заведения, которые могут касаться окна [From, To)
//
// Записи хранятся в трех формах, поэтому условие - объединение:
// 1. start_at задан: начало раньше To и не раньше From минус максимальная длительность
// 2. start_at пуст: дата reservation_date (первые 10 символов) входит в window.Dates
// 3. нет ни start_at, ни даты: created_at попадает в окно (деградированные записи)
//
// Точное пересечение интервалов проверяет движок после нормализации.
// Внутри транзакции добавляется FOR UPDATE.
func (r *Repository) ListByWindow(ctx context.Context, window domain.ReservationWindow) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	earliest := window.From.Add(-time.Duration(domain.MaxDurationMinutes) * time.Minute)

	conditions := squirrel.Or{
		squirrel.And{
			squirrel.NotEq{"start_at": nil},
			squirrel.Lt{"start_at": window.To},
			squirrel.GtOrEq{"start_at": earliest},
		},
		squirrel.And{
			squirrel.Eq{"start_at": nil},
			squirrel.Eq{"LEFT(reservation_date, 10)": window.Dates},
		},
		squirrel.And{
			squirrel.Eq{"start_at": nil},
			squirrel.Eq{"reservation_date": ""},
			squirrel.GtOrEq{"created_at": window.From.AddDate(0, 0, -1)},
			squirrel.Lt{"created_at": window.To},
		},
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"venue_id": window.VenueID}).
		Where(conditions).
		OrderBy("created_at ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatus меняет статус бронирования
// Физически бронирования не удаляются, отмена - это статус
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var (
			reservation          domain.Reservation
			tableID, notes       sql.NullString
			startAt, endAt       sql.NullTime
			createdAt, updatedAt sql.NullTime
			status               string
		)

		err := rows.Scan(
			&reservation.ID,
			&reservation.VenueID,
			&tableID,
			&reservation.TableNumber,
			&reservation.CustomerName,
			&reservation.CustomerPhone,
			&reservation.CustomerEmail,
			&reservation.PartySize,
			&reservation.ReservationDate,
			&reservation.ReservationTime,
			&startAt,
			&endAt,
			&reservation.DurationMinutes,
			&status,
			&notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		if tableID.Valid && tableID.String != "" {
			reservation.TableID = &tableID.String
		}
		if notes.Valid {
			reservation.Notes = &notes.String
		}
		if startAt.Valid {
			reservation.StartAt = &startAt.Time
		}
		if endAt.Valid {
			reservation.EndAt = &endAt.Time
		}
		reservation.Status = domain.ReservationStatus(status)
		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
