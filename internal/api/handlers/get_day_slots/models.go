package get_day_slots

import (
	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	getDaySlots "github.com/1122padelclub/padel-app-sub002/internal/usecase/get_day_slots"
)

// SlotResponse слот сетки с занятостью
type SlotResponse struct {
	Time      string                     `json:"time"` // "19:30"
	Bookable  bool                       `json:"bookable"`
	Occupancy *handlers.SnapshotResponse `json:"occupancy"`
}

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	VenueID        string         `json:"venueId"`
	Date           string         `json:"date"`
	Closed         bool           `json:"closed"`
	Slots          []SlotResponse `json:"slots"`
	SkippedRecords int            `json:"skippedRecords"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getDaySlots.Response) DaySlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      slot.Time,
			Bookable:  slot.Bookable,
			Occupancy: handlers.FromDomainSnapshot(slot.Snapshot),
		})
	}

	return DaySlotsResponse{
		VenueID:        resp.VenueID,
		Date:           resp.Date,
		Closed:         resp.Closed,
		Slots:          slots,
		SkippedRecords: resp.SkippedRecords,
	}
}
