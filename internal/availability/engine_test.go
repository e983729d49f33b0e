package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

func TestSlotOccupancy_BoundReservation(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("r1", "t2", "2024-01-01", "12:00", 4, 120, domain.StatusConfirmed),
	})

	snapshot, err := view.SlotOccupancy("2024-01-01", "12:30")
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.TotalTables)
	assert.Equal(t, 1, snapshot.OccupiedTables)
	assert.Equal(t, 2, snapshot.AvailableTables)
	assert.Equal(t, 12, snapshot.TotalCapacity)
	assert.Equal(t, 4, snapshot.OccupiedCapacity)
	assert.Equal(t, 8, snapshot.AvailableCapacity)
	assert.Equal(t, []string{"t2"}, snapshot.OccupiedTableIDs)
	assert.InDelta(t, 33.33, snapshot.OccupancyRate, 0.01)
	assert.Len(t, snapshot.Reservations, 1)
}

func TestSlotOccupancy_CancelledReleasesCapacity(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("r1", "t2", "2024-01-01", "12:00", 4, 120, domain.StatusCancelled),
		legacyReservation("r2", "", "2024-01-01", "12:00", 10, 120, "no-show"),
	})

	snapshot, err := view.SlotOccupancy("2024-01-01", "12:30")
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.OccupiedTables)
	assert.Equal(t, 0, snapshot.OccupiedCapacity)
	assert.Equal(t, 0, snapshot.RequestedSeats)
	assert.Equal(t, 12, snapshot.AvailableCapacity)
	assert.Empty(t, snapshot.Reservations)
}

func TestOccupancyAt_HalfOpenInterval(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("r1", "", "2024-01-01", "10:00", 4, 120, domain.StatusConfirmed),
	})

	assert.Equal(t, 0, view.OccupancyAt(at("2024-01-01", "09:59")).OccupiedCapacity)
	assert.Equal(t, 4, view.OccupancyAt(at("2024-01-01", "10:00")).OccupiedCapacity)
	assert.Equal(t, 4, view.OccupancyAt(at("2024-01-01", "11:59")).OccupiedCapacity)
	assert.Equal(t, 0, view.OccupancyAt(at("2024-01-01", "12:00")).OccupiedCapacity)
}

func TestOccupancyAt_UnboundDemandAllocatedGreedily(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("r1", "", "2024-01-01", "12:00", 4, 120, domain.StatusConfirmed),
	})

	snapshot := view.OccupancyAt(at("2024-01-01", "12:30"))

	// 2 + 4 >= 4
	assert.Equal(t, 2, snapshot.OccupiedTables)
	assert.Equal(t, []string{"t1", "t2"}, snapshot.OccupiedTableIDs)
	assert.Equal(t, 4, snapshot.OccupiedCapacity)
}

func TestOccupancyAt_UnknownTableFallsBackToPool(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("r1", "ghost", "2024-01-01", "12:00", 2, 120, domain.StatusConfirmed),
	})

	snapshot := view.OccupancyAt(at("2024-01-01", "12:30"))

	assert.Equal(t, 1, snapshot.OccupiedTables)
	assert.Equal(t, []string{"t1"}, snapshot.OccupiedTableIDs)
}

func TestOccupancyAt_Overbooking(t *testing.T) {
	tables := []*domain.Table{newTable("a", "1", 2), newTable("b", "2", 4)}
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, tables, []*domain.Reservation{
		legacyReservation("r1", "", "2024-01-01", "20:00", 5, 120, domain.StatusConfirmed),
		legacyReservation("r2", "", "2024-01-01", "20:00", 4, 120, domain.StatusPending),
	})

	snapshot := view.OccupancyAt(at("2024-01-01", "20:30"))

	assert.Equal(t, 6, snapshot.TotalCapacity)
	assert.Equal(t, 6, snapshot.OccupiedCapacity)
	assert.Equal(t, 0, snapshot.AvailableCapacity)
	assert.Equal(t, 9, snapshot.RequestedSeats)
	assert.Equal(t, 3, snapshot.OverbookedSeats)
	assert.Equal(t, 2, snapshot.OccupiedTables)
	assert.Equal(t, 0, snapshot.AvailableTables)
	assert.True(t, snapshot.IsFull())
}

func TestOccupancyAt_ConservationAcrossGrid(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("r1", "t2", "2024-01-01", "12:00", 4, 120, domain.StatusConfirmed),
		legacyReservation("r2", "", "2024-01-01", "13:00", 7, 90, domain.StatusPending),
		legacyReservation("r3", "", "2024-01-01", "18:00", 20, 0, domain.StatusSeated),
		legacyReservation("r4", "t1", "2024-01-01", "21:00", 2, 60, domain.StatusCancelled),
	})

	grid, err := view.DayGrid("2024-01-01")
	require.NoError(t, err)
	require.NotEmpty(t, grid)

	for _, instant := range grid {
		s := view.OccupancyAt(instant)
		assert.Equal(t, s.TotalCapacity, s.OccupiedCapacity+s.AvailableCapacity, instant)
		assert.Equal(t, s.TotalTables, s.OccupiedTables+s.AvailableTables, instant)
		assert.GreaterOrEqual(t, s.AvailableCapacity, 0, instant)
		assert.GreaterOrEqual(t, s.AvailableTables, 0, instant)
		assert.GreaterOrEqual(t, s.OverbookedSeats, 0, instant)
	}
}

func TestOccupancyAt_Idempotent(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	records := []*domain.Reservation{
		legacyReservation("r1", "t2", "2024-01-01", "12:00", 4, 120, domain.StatusConfirmed),
		legacyReservation("r2", "", "2024-01-01", "12:15", 3, 60, domain.StatusPending),
	}
	view := engine.NewView(testVenue, scenarioTables(), records)

	first := view.OccupancyAt(at("2024-01-01", "12:30"))
	second := view.OccupancyAt(at("2024-01-01", "12:30"))
	assert.Equal(t, first, second)

	// входные данные не изменяются
	assert.Equal(t, "t2", *records[0].TableID)
	assert.Nil(t, records[1].TableID)
}

func TestNewView_SkipsMalformedRecords(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("ok", "", "2024-01-01", "12:00", 2, 0, domain.StatusConfirmed),
		legacyReservation("bad-date", "", "someday", "12:00", 2, 0, domain.StatusConfirmed),
		legacyReservation("bad-party", "", "2024-01-01", "12:00", 0, 0, domain.StatusConfirmed),
	})

	assert.Equal(t, 2, view.Skipped())
	require.Len(t, view.Reservations(), 1)
	assert.Equal(t, "ok", view.Reservations()[0].ID)
}

func TestNewView_NoTables(t *testing.T) {
	engine := NewEngine(DefaultSettings(), nil)
	view := engine.NewView(testVenue, nil, []*domain.Reservation{
		legacyReservation("r1", "", "2024-01-01", "12:00", 2, 0, domain.StatusConfirmed),
	})

	snapshot := view.OccupancyAt(at("2024-01-01", "12:30"))
	assert.Equal(t, 0, snapshot.TotalTables)
	assert.Equal(t, 0, snapshot.OccupiedCapacity)
	assert.Equal(t, 2, snapshot.OverbookedSeats)
	assert.Zero(t, snapshot.OccupancyRate)
}

func TestSlotOccupancy_InvalidQuery(t *testing.T) {
	view := NewEngine(DefaultSettings(), nil).NewView(testVenue, scenarioTables(), nil)

	_, err := view.SlotOccupancy("2024-13-01", "12:00")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = view.SlotOccupancy("2024-01-01", "25:00")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDayGrid_AfterMidnight(t *testing.T) {
	settings := DefaultSettings()
	settings.OpenTime = "18:00"
	settings.CloseTime = "01:00"

	view := NewEngine(settings, nil).NewView(testVenue, scenarioTables(), []*domain.Reservation{
		legacyReservation("late", "", "2024-01-02", "00:00", 2, 60, domain.StatusConfirmed),
	})

	grid, err := view.DayGrid("2024-01-01")
	require.NoError(t, err)
	require.Len(t, grid, 14)
	assert.Equal(t, at("2024-01-01", "18:00"), grid[0])
	assert.Equal(t, at("2024-01-02", "00:30"), grid[len(grid)-1])

	assert.Equal(t, 2, view.OccupancyAt(grid[len(grid)-1]).OccupiedCapacity)
}

func TestSlotOccupancy_MatchesDayGridAfterMidnight(t *testing.T) {
	settings := DefaultSettings()
	settings.OpenTime = "18:00"
	settings.CloseTime = "01:00"

	start := at("2024-01-02", "00:15")
	view := NewEngine(settings, nil).NewView(testVenue, scenarioTables(), []*domain.Reservation{
		{ID: "late", VenueID: testVenue, PartySize: 4, StartAt: &start, DurationMinutes: 60, Status: domain.StatusConfirmed},
		legacyReservation("early", "t1", "2024-01-01", "18:00", 2, 90, domain.StatusConfirmed),
	})

	slots, err := DaySlots("2024-01-01", settings.OpenTime, settings.CloseTime, settings.SlotDurationMinutes)
	require.NoError(t, err)
	grid, err := view.DayGrid("2024-01-01")
	require.NoError(t, err)
	require.Len(t, slots, len(grid))

	for i, clock := range slots {
		snapshot, err := view.SlotOccupancy("2024-01-01", clock)
		require.NoError(t, err)
		assert.Equal(t, view.OccupancyAt(grid[i]), snapshot, "slot %s", clock)
	}

	last, err := view.SlotOccupancy("2024-01-01", "00:30")
	require.NoError(t, err)
	assert.Equal(t, at("2024-01-02", "00:30"), last.Time)
	assert.Equal(t, 4, last.OccupiedCapacity)
}

func TestIsSlotAvailable_AfterMidnightUsesNextDay(t *testing.T) {
	settings := DefaultSettings()
	settings.OpenTime = "18:00"
	settings.CloseTime = "01:00"
	settings.RequireSpecificTable = true

	start := at("2024-01-02", "00:00")
	view := NewEngine(settings, nil).NewView(testVenue, []*domain.Table{newTable("t1", "1", 4)}, []*domain.Reservation{
		{ID: "late", VenueID: testVenue, TableID: ptrTo("t1"), PartySize: 4, StartAt: &start, DurationMinutes: 60, Status: domain.StatusConfirmed},
	})

	admission, err := view.IsSlotAvailable("2024-01-01", "00:30", 2, 30)
	require.NoError(t, err)
	assert.Equal(t, at("2024-01-02", "00:30"), admission.Start)
	assert.False(t, admission.Available)
}
