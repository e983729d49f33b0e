package domain

import "time"

// OccupancySnapshot represents occupancy of a venue at one instant
type OccupancySnapshot struct {
	Time              time.Time
	TotalTables       int
	OccupiedTables    int
	AvailableTables   int
	TotalCapacity     int
	OccupiedCapacity  int // clamped to TotalCapacity
	AvailableCapacity int
	// RequestedSeats is the raw demand, OverbookedSeats the part above TotalCapacity
	RequestedSeats  int
	OverbookedSeats int
	OccupancyRate   float64 // occupied tables, percent
	// OccupiedTableIDs lists tables bound by reservations first, then greedy-allocated ones
	OccupiedTableIDs []string
	Reservations     []NormalizedReservation
}

// IsFull returns true if no seats are left
func (s *OccupancySnapshot) IsFull() bool {
	return s.AvailableCapacity <= 0
}

// AdmissionPath tells how a party was admitted
type AdmissionPath string

const (
	AdmissionNone  AdmissionPath = ""
	AdmissionTable AdmissionPath = "table"
	AdmissionPool  AdmissionPath = "pool"
)

// Admission is the answer to "can a party of N be seated at T for D minutes"
type Admission struct {
	Available bool
	Path      AdmissionPath
	// BestTable is the tightest-fit free table, nil when admitted through the pool or rejected
	BestTable         *Table
	CandidateTables   []*Table
	Start             time.Time
	End               time.Time
	PartySize         int
	AvailableCapacity int // seats free for the whole window
	Reason            string
}

// DayOccupancyStats is a rollup of one service day
type DayOccupancyStats struct {
	Date                  string
	TotalReservations     int // all statuses intersecting the day
	ConfirmedReservations int
	PendingReservations   int
	CancelledReservations int
	NoShowReservations    int
	TotalGuests           int // occupancy-counting statuses only
	// OccupancyRate is the peak occupied-tables rate across the slot grid
	OccupancyRate        float64
	PeakTime             string
	AverageOccupancyRate float64
	// CapacityUtilization is reserved seat-minutes / available seat-minutes during service hours, percent
	CapacityUtilization float64
	TotalCapacity       int
	SlotCount           int
	SkippedRecords      int
}

// SlotOccupancy is a grid slot with its snapshot
type SlotOccupancy struct {
	Time     string
	Bookable bool
	Snapshot *OccupancySnapshot
}

// DaySchedule is the slot grid of one service day
type DaySchedule struct {
	VenueID        string
	Date           string
	Closed         bool
	Slots          []SlotOccupancy
	SkippedRecords int
}
