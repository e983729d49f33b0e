package domain

import "time"

// VenueSettings represents per-venue availability configuration.
// Zero values mean "use the service default" and are resolved by the engine settings.
type VenueSettings struct {
	VenueID                 string
	Timezone                string
	OpenTime                string // "HH:MM"
	CloseTime               string // "HH:MM", at or before OpenTime means closing after midnight
	SlotDurationMinutes     int
	DefaultDurationMinutes  int
	DefaultTableCapacity    int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	RequireSpecificTable    bool
	AutoConfirm             bool
	ClosedWeekdays          []time.Weekday
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsClosedOn returns true if the venue does not open on the weekday of date
func (s *VenueSettings) IsClosedOn(date time.Time) bool {
	for _, wd := range s.ClosedWeekdays {
		if wd == date.Weekday() {
			return true
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *VenueSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// InitialStatus returns the status a new reservation starts in
func (s *VenueSettings) InitialStatus() ReservationStatus {
	if s.AutoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}
