package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	createReservation "github.com/1122padelclub/padel-app-sub002/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req *createReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}

	start := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	return &createReservation.Response{
		Reservation: &domain.Reservation{
			ID:              "r1",
			VenueID:         req.VenueID,
			TableNumber:     domain.UnassignedTableLabel,
			CustomerName:    req.CustomerName,
			PartySize:       req.PartySize,
			ReservationDate: req.Date,
			ReservationTime: req.Time,
			StartAt:         &start,
			EndAt:           &end,
			DurationMinutes: 120,
			Status:          domain.StatusPending,
		},
		Path: domain.AdmissionPool,
	}, nil
}

const validBody = `{"venueId":"v1","date":"2024-01-01","time":"19:00","partySize":8,"customerName":"Ana"}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 8, uc.req.PartySize)
	assert.Equal(t, "19:00", uc.req.Time)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r1", body["id"])
	assert.Equal(t, "pool", body["admissionPath"])
	assert.Equal(t, domain.UnassignedTableLabel, body["tableNumber"])
	assert.Equal(t, "pending", body["status"])
	assert.NotContains(t, body, "tableId")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: partySize", createReservation.ErrInvalidInput), http.StatusBadRequest},
		{"past date", createReservation.ErrInvalidDate, http.StatusBadRequest},
		{"too far", createReservation.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"closed", createReservation.ErrVenueClosed, http.StatusBadRequest},
		{"outside hours", createReservation.ErrOutsideServiceHours, http.StatusBadRequest},
		{"too late", createReservation.ErrTooLateToBook, http.StatusBadRequest},
		{"slot taken", fmt.Errorf("%w: full", createReservation.ErrSlotNotAvailable), http.StatusConflict},
		{"table taken", createReservation.ErrTableNotAvailable, http.StatusConflict},
		{"busy", createReservation.ErrBusy, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			assert.Equal(t, tt.status, serve(h, validBody).Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	assert.Equal(t, http.StatusBadRequest, serve(h, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"partySize":"four"}`).Code)
	assert.Nil(t, uc.req)
}
