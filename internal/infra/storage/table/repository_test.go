package table

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/ptr"
)

func setupRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil, "test")), mock
}

func TestRepository_ListByVenue(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, venue_id, number, capacity, is_active, created_at, updated_at FROM venue_tables WHERE venue_id = $1")).
		WithArgs("venue-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("t1", "venue-1", "1", 2, true, now, now).
			AddRow("t2", "venue-1", "Barra", nil, nil, now, now).
			AddRow("t3", "venue-1", "PRUEBA", 4, false, now, now))

	tables, err := repo.ListByVenue(context.Background(), "venue-1")
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Equal(t, 2, tables[0].Capacity)
	assert.True(t, tables[0].Active())
	// вместимость и флаг не заданы
	assert.Equal(t, 0, tables[1].Capacity)
	assert.Nil(t, tables[1].IsActive)
	assert.True(t, tables[1].Active())
	assert.False(t, tables[2].Active())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery("FROM venue_tables WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTableNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAndUpdate(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO venue_tables (id,venue_id,number,capacity,is_active)")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE venue_tables SET number = $1, capacity = $2, is_active = $3, updated_at = NOW() WHERE id = $4")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &domain.Table{VenueID: "venue-1", Number: "7", Capacity: 6})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	created.IsActive = ptr.Ptr(false)
	require.NoError(t, repo.Update(context.Background(), created))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec("UPDATE venue_tables").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Table{ID: "missing", Number: "1", Capacity: 2})
	assert.ErrorIs(t, err, ErrTableNotFound)
}
