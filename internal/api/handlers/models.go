package handlers

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// TableResponse столик в ответах API
type TableResponse struct {
	ID       string `json:"id"`
	VenueID  string `json:"venueId"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
}

// SnapshotResponse занятость заведения на момент времени
type SnapshotResponse struct {
	Time              time.Time `json:"time"`
	TotalTables       int       `json:"totalTables"`
	OccupiedTables    int       `json:"occupiedTables"`
	AvailableTables   int       `json:"availableTables"`
	TotalCapacity     int       `json:"totalCapacity"`
	OccupiedCapacity  int       `json:"occupiedCapacity"`
	AvailableCapacity int       `json:"availableCapacity"`
	RequestedSeats    int       `json:"requestedSeats"`
	OverbookedSeats   int       `json:"overbookedSeats"`
	OccupancyRate     float64   `json:"occupancyRate"`
	OccupiedTableIDs  []string  `json:"occupiedTableIds"`
	ReservationIDs    []string  `json:"reservationIds"`
}

// FromDomainTable конвертирует столик в ответ API
// Отсутствующая вместимость заменяется значением по умолчанию
func FromDomainTable(t *domain.Table, defaultCapacity int) TableResponse {
	return TableResponse{
		ID:       t.ID,
		VenueID:  t.VenueID,
		Number:   t.Number,
		Capacity: t.EffectiveCapacity(defaultCapacity),
	}
}

// FromDomainTables конвертирует список столиков
func FromDomainTables(tables []*domain.Table, defaultCapacity int) []TableResponse {
	result := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		result = append(result, FromDomainTable(t, defaultCapacity))
	}
	return result
}

// FromDomainSnapshot конвертирует снапшот занятости в ответ API
func FromDomainSnapshot(s *domain.OccupancySnapshot) *SnapshotResponse {
	if s == nil {
		return nil
	}

	occupied := s.OccupiedTableIDs
	if occupied == nil {
		occupied = []string{}
	}
	reservationIDs := make([]string, 0, len(s.Reservations))
	for _, r := range s.Reservations {
		reservationIDs = append(reservationIDs, r.ID)
	}

	return &SnapshotResponse{
		Time:              s.Time,
		TotalTables:       s.TotalTables,
		OccupiedTables:    s.OccupiedTables,
		AvailableTables:   s.AvailableTables,
		TotalCapacity:     s.TotalCapacity,
		OccupiedCapacity:  s.OccupiedCapacity,
		AvailableCapacity: s.AvailableCapacity,
		RequestedSeats:    s.RequestedSeats,
		OverbookedSeats:   s.OverbookedSeats,
		OccupancyRate:     s.OccupancyRate,
		OccupiedTableIDs:  occupied,
		ReservationIDs:    reservationIDs,
	}
}
