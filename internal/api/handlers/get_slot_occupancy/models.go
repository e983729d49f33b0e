package get_slot_occupancy

import "github.com/1122padelclub/padel-app-sub002/internal/api/handlers"

// SlotOccupancyResponse HTTP response model
type SlotOccupancyResponse struct {
	VenueID   string                     `json:"venueId"`
	Date      string                     `json:"date"`
	Time      string                     `json:"time"`
	Occupancy *handlers.SnapshotResponse `json:"occupancy"`
}
