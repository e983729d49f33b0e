package availability

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

const testVenue = "venue-1"

func newTable(id, number string, capacity int) *domain.Table {
	return &domain.Table{ID: id, VenueID: testVenue, Number: number, Capacity: capacity}
}

func inactiveTable(id, number string, capacity int) *domain.Table {
	active := false
	t := newTable(id, number, capacity)
	t.IsActive = &active
	return t
}

// legacyReservation запись в старом формате: дата + время суток заведения
func legacyReservation(id, tableID, date, clock string, party, duration int, status domain.ReservationStatus) *domain.Reservation {
	r := &domain.Reservation{
		ID:              id,
		VenueID:         testVenue,
		PartySize:       party,
		ReservationDate: date,
		ReservationTime: clock,
		DurationMinutes: duration,
		Status:          status,
	}
	if tableID != "" {
		r.TableID = &tableID
	}
	return r
}

func at(date, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// scenarioTables столики 2, 4 и 6 мест
func scenarioTables() []*domain.Table {
	return []*domain.Table{
		newTable("t1", "1", 2),
		newTable("t2", "2", 4),
		newTable("t3", "3", 6),
	}
}

func ptrTo(s string) *string {
	return &s
}
