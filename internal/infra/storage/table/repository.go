package table

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/psqlbuilder"
)

const tableName = "venue_tables"

var columns = []string{
	"id",
	"venue_id",
	"number",
	"capacity",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий столиков заведения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByVenue возвращает все столики заведения, включая отключенные
// Фильтрацию и порядок отображения определяет движок доступности
func (r *Repository) ListByVenue(ctx context.Context, venueID string) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("number ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTables(rows)
}

// GetByID получает столик по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables, err := r.scanTables(rows)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrTableNotFound
	}

	return tables[0], nil
}

// Create создает столик
func (r *Repository) Create(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if table.ID == "" {
		table.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "venue_id", "number", "capacity", "is_active").
		Values(table.ID, table.VenueID, table.Number, table.Capacity, table.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	table.CreatedAt = createdAt.Time
	table.UpdatedAt = updatedAt.Time

	return table, nil
}

// Update обновляет метку, вместимость и флаг активности
// Столики не удаляются: отключение через is_active = false
func (r *Repository) Update(ctx context.Context, table *domain.Table) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("number", table.Number).
		Set("capacity", table.Capacity).
		Set("is_active", table.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": table.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTableNotFound
	}

	return nil
}

// scanTables сканирует результаты запроса в слайс столиков
func (r *Repository) scanTables(rows *sql.Rows) ([]*domain.Table, error) {
	tables := make([]*domain.Table, 0)

	for rows.Next() {
		var (
			table                domain.Table
			capacity             sql.NullInt64
			isActive             sql.NullBool
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&table.ID,
			&table.VenueID,
			&table.Number,
			&capacity,
			&isActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTables - scan row: %v", ErrScanRow, err)
		}

		// пустая вместимость заменяется значением по умолчанию в движке
		table.Capacity = int(capacity.Int64)
		if isActive.Valid {
			active := isActive.Bool
			table.IsActive = &active
		}
		table.CreatedAt = createdAt.Time
		table.UpdatedAt = updatedAt.Time

		tables = append(tables, &table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTables - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}
