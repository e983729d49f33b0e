package create_reservation

import (
	"github.com/1122padelclub/padel-app-sub002/internal/service/reservations/models"
	createReservation "github.com/1122padelclub/padel-app-sub002/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	VenueID         string  `json:"venueId"`
	Date            string  `json:"date"` // "2025-10-15"
	Time            string  `json:"time"` // "20:30"
	PartySize       int     `json:"partySize"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	TableID         *string `json:"tableId,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone,omitempty"`
	CustomerEmail   string  `json:"customerEmail,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	*models.ReservationResponse
	AdmissionPath string `json:"admissionPath"` // table | pool
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		VenueID:         r.VenueID,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		DurationMinutes: r.DurationMinutes,
		TableID:         r.TableID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createReservation.Response) CreateReservationResponse {
	return CreateReservationResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation),
		AdmissionPath:       string(resp.Path),
	}
}
