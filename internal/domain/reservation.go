package domain

import (
	"strings"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// statusAliases maps spellings found in stored data to canonical statuses
var statusAliases = map[string]ReservationStatus{
	"pending":   StatusPending,
	"confirmed": StatusConfirmed,
	"seated":    StatusSeated,
	"active":    StatusActive,
	"completed": StatusCompleted,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"no_show":   StatusNoShow,
	"no-show":   StatusNoShow,
	"noshow":    StatusNoShow,
}

// ParseReservationStatus normalizes a stored status string.
// Unknown values are returned lower-cased with ok=false.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if status, ok := statusAliases[key]; ok {
		return status, true
	}
	return ReservationStatus(key), false
}

// IsOccupying returns true if the status holds physical capacity.
// Only cancelled and no_show release it, unknown statuses keep occupying.
func (s ReservationStatus) IsOccupying() bool {
	status, _ := ParseReservationStatus(string(s))
	return status != StatusCancelled && status != StatusNoShow
}

// IsTerminal returns true if no further transitions are allowed
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusNoShow || s == StatusCompleted
}

// reservationTransitions allowed status transitions
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusSeated, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusActive, StatusCompleted},
	StatusActive:    {StatusCompleted},
}

// CanTransitionTo returns true if the lifecycle allows moving to next
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a raw reservation record as stored.
// Legacy rows carry ReservationDate/ReservationTime (venue wall-clock),
// newer rows carry StartAt/EndAt instants. Normalization happens in the availability package.
type Reservation struct {
	ID          string
	VenueID     string
	TableID     *string // nil = "to be assigned"
	TableNumber string  // display only

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	PartySize int

	ReservationDate string // "2006-01-02" or a full timestamp string
	ReservationTime string // "15:04" or "15:04:05"
	StartAt         *time.Time
	EndAt           *time.Time
	// StartAtText/EndAtText hold textual instants from documents that stored strings
	StartAtText     string
	EndAtText       string
	DurationMinutes int // 0 = venue default

	Status ReservationStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssigned returns true if the reservation is bound to a specific table
func (r *Reservation) IsAssigned() bool {
	return r.TableID != nil && *r.TableID != ""
}

// NormalizationSource tells which representation produced the interval
type NormalizationSource string

const (
	SourceInstant           NormalizationSource = "instant"
	SourceLegacyDateTime    NormalizationSource = "legacy_date_time"
	SourceCreatedAtFallback NormalizationSource = "created_at_fallback"
)

// NormalizedReservation is the canonical [Start, End) interval form used by the engine
type NormalizedReservation struct {
	ID        string
	TableID   string // "" = unassigned pool
	PartySize int
	Status    ReservationStatus
	Start     time.Time
	End       time.Time
	Source    NormalizationSource
}

// Assigned returns true if the reservation is bound to a table
func (r NormalizedReservation) Assigned() bool {
	return r.TableID != ""
}

// OccupiesAt returns true if the reservation holds capacity at the instant (start <= t < end)
func (r NormalizedReservation) OccupiesAt(t time.Time) bool {
	return r.Status.IsOccupying() && !t.Before(r.Start) && t.Before(r.End)
}

// Overlaps returns true if the reservation holds capacity inside [from, to)
func (r NormalizedReservation) Overlaps(from, to time.Time) bool {
	return r.Status.IsOccupying() && r.Start.Before(to) && r.End.After(from)
}

// ReservationWindow selects reservations of a venue that may touch [From, To).
// Dates lists the legacy reservation_date values worth fetching.
type ReservationWindow struct {
	VenueID string
	From    time.Time
	To      time.Time
	Dates   []string
}
