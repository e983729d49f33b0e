package get_day_stats

import "github.com/1122padelclub/padel-app-sub002/internal/domain"

// DayStatsResponse HTTP response model
type DayStatsResponse struct {
	VenueID               string  `json:"venueId"`
	Date                  string  `json:"date"`
	TotalReservations     int     `json:"totalReservations"`
	ConfirmedReservations int     `json:"confirmedReservations"`
	PendingReservations   int     `json:"pendingReservations"`
	CancelledReservations int     `json:"cancelledReservations"`
	NoShowReservations    int     `json:"noShowReservations"`
	TotalGuests           int     `json:"totalGuests"`
	OccupancyRate         float64 `json:"occupancyRate"`
	PeakTime              string  `json:"peakTime,omitempty"`
	AverageOccupancyRate  float64 `json:"averageOccupancyRate"`
	CapacityUtilization   float64 `json:"capacityUtilization"`
	TotalCapacity         int     `json:"totalCapacity"`
	SlotCount             int     `json:"slotCount"`
	SkippedRecords        int     `json:"skippedRecords"`
}

// FromDomainStats конвертирует сводку дня в HTTP модель
func FromDomainStats(venueID string, s *domain.DayOccupancyStats) DayStatsResponse {
	return DayStatsResponse{
		VenueID:               venueID,
		Date:                  s.Date,
		TotalReservations:     s.TotalReservations,
		ConfirmedReservations: s.ConfirmedReservations,
		PendingReservations:   s.PendingReservations,
		CancelledReservations: s.CancelledReservations,
		NoShowReservations:    s.NoShowReservations,
		TotalGuests:           s.TotalGuests,
		OccupancyRate:         s.OccupancyRate,
		PeakTime:              s.PeakTime,
		AverageOccupancyRate:  s.AverageOccupancyRate,
		CapacityUtilization:   s.CapacityUtilization,
		TotalCapacity:         s.TotalCapacity,
		SlotCount:             s.SlotCount,
		SkippedRecords:        s.SkippedRecords,
	}
}
