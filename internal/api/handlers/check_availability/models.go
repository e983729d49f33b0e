package check_availability

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID           string                   `json:"venueId"`
	Available         bool                     `json:"available"`
	Path              string                   `json:"path,omitempty"` // table | pool
	Reason            string                   `json:"reason"`
	PartySize         int                      `json:"partySize"`
	Start             time.Time                `json:"start"`
	End               time.Time                `json:"end"`
	DurationMinutes   int                      `json:"durationMinutes"`
	BestTable         *handlers.TableResponse  `json:"bestTable,omitempty"`
	CandidateTables   []handlers.TableResponse `json:"candidateTables"`
	AvailableCapacity int                      `json:"availableCapacity"`
}

// FromDomainAdmission конвертирует решение о посадке в HTTP модель
func FromDomainAdmission(venueID string, a *domain.Admission, defaultCapacity int) AvailabilityResponse {
	resp := AvailabilityResponse{
		VenueID:           venueID,
		Available:         a.Available,
		Path:              string(a.Path),
		Reason:            a.Reason,
		PartySize:         a.PartySize,
		Start:             a.Start,
		End:               a.End,
		DurationMinutes:   int(a.End.Sub(a.Start) / time.Minute),
		CandidateTables:   handlers.FromDomainTables(a.CandidateTables, defaultCapacity),
		AvailableCapacity: a.AvailableCapacity,
	}
	if a.BestTable != nil {
		best := handlers.FromDomainTable(a.BestTable, defaultCapacity)
		resp.BestTable = &best
	}
	return resp
}
