package models

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              string     `json:"id"`
	VenueID         string     `json:"venueId"`
	TableID         *string    `json:"tableId,omitempty"`
	TableNumber     string     `json:"tableNumber"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	CustomerEmail   string     `json:"customerEmail,omitempty"`
	PartySize       int        `json:"partySize"`
	Date            string     `json:"date,omitempty"` // "2025-10-15"
	Time            string     `json:"time,omitempty"` // "20:30"
	StartAt         *time.Time `json:"startAt,omitempty"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations   []ReservationResponse `json:"reservations"`
	SkippedRecords int                   `json:"skippedRecords"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		VenueID:         r.VenueID,
		TableNumber:     r.TableNumber,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		PartySize:       r.PartySize,
		Date:            r.ReservationDate,
		Time:            r.ReservationTime,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.IsAssigned() {
		resp.TableID = r.TableID
	}
	if resp.TableNumber == "" && !r.IsAssigned() {
		resp.TableNumber = domain.UnassignedTableLabel
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, skipped int) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations:   make([]ReservationResponse, 0, len(reservations)),
		SkippedRecords: skipped,
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
