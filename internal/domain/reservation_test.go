package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseReservationStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   ReservationStatus
		wantOK bool
	}{
		{"confirmed", StatusConfirmed, true},
		{" Canceled ", StatusCancelled, true},
		{"no-show", StatusNoShow, true},
		{"NO_SHOW", StatusNoShow, true},
		{"waitlisted", ReservationStatus("waitlisted"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseReservationStatus(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestReservationStatus_IsOccupying(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusSeated, StatusActive, StatusCompleted, "waitlisted"} {
		assert.True(t, s.IsOccupying(), s)
	}
	for _, s := range []ReservationStatus{StatusCancelled, StatusNoShow, "Canceled"} {
		assert.False(t, s.IsOccupying(), s)
	}
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusNoShow))
	assert.True(t, StatusSeated.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusPending))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
}

func TestNormalizedReservation_HalfOpen(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	r := NormalizedReservation{PartySize: 4, Status: StatusConfirmed, Start: start, End: start.Add(2 * time.Hour)}

	assert.True(t, r.OccupiesAt(start))
	assert.True(t, r.OccupiesAt(start.Add(119*time.Minute)))
	assert.False(t, r.OccupiesAt(start.Add(2*time.Hour)))

	// граничащие интервалы не пересекаются
	assert.False(t, r.Overlaps(start.Add(2*time.Hour), start.Add(3*time.Hour)))
	assert.False(t, r.Overlaps(start.Add(-time.Hour), start))
	assert.True(t, r.Overlaps(start.Add(-time.Hour), start.Add(time.Minute)))

	r.Status = StatusCancelled
	assert.False(t, r.OccupiesAt(start.Add(time.Hour)))
}

func TestTable_ActiveAndCapacity(t *testing.T) {
	disabled := false
	assert.True(t, (&Table{}).Active())
	assert.False(t, (&Table{IsActive: &disabled}).Active())
	assert.Equal(t, 4, (&Table{Capacity: 0}).EffectiveCapacity(4))
	assert.Equal(t, 6, (&Table{Capacity: 6}).EffectiveCapacity(4))
}

func TestVenueSettings(t *testing.T) {
	s := &VenueSettings{ClosedWeekdays: []time.Weekday{time.Monday}}
	assert.True(t, s.IsClosedOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))) // понедельник
	assert.False(t, s.IsClosedOn(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, StatusPending, s.InitialStatus())

	s.AutoConfirm = true
	assert.Equal(t, StatusConfirmed, s.InitialStatus())
}
