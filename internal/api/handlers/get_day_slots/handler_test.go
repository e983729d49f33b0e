package get_day_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	getDaySlots "github.com/1122padelclub/padel-app-sub002/internal/usecase/get_day_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req  *getDaySlots.Request
	resp *getDaySlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDaySlots.Request) (*getDaySlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"venueId": "v1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	at := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getDaySlots.Response{
		VenueID: "v1",
		Date:    "2024-01-01",
		Slots: []domain.SlotOccupancy{
			{Time: "19:00", Bookable: true, Snapshot: &domain.OccupancySnapshot{Time: at, AvailableCapacity: 4}},
		},
		SkippedRecords: 2,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, "date=2024-01-01&partySize=4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, uc.req.PartySize)
	assert.Equal(t, "v1", uc.req.VenueID)

	var body DaySlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.True(t, body.Slots[0].Bookable)
	assert.Equal(t, 4, body.Slots[0].Occupancy.AvailableCapacity)
	assert.Equal(t, 2, body.SkippedRecords)
}

func TestHandle_ClosedDayHasEmptySlots(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: &getDaySlots.Response{VenueID: "v1", Date: "2024-01-01", Closed: true}}, nopLogger{})

	rec := serve(h, "date=2024-01-01")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"venueId":"v1","date":"2024-01-01","closed":true,"slots":[],"skippedRecords":0}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"missing date", "", nil, http.StatusBadRequest},
		{"bad party", "date=2024-01-01&partySize=many", nil, http.StatusBadRequest},
		{"invalid input", "date=2024-01-01", fmt.Errorf("%w: x", getDaySlots.ErrInvalidInput), http.StatusBadRequest},
		{"past", "date=2024-01-01", getDaySlots.ErrInvalidDate, http.StatusBadRequest},
		{"too far", "date=2024-01-01", getDaySlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"unavailable", "date=2024-01-01", fmt.Errorf("%w: db", getDaySlots.ErrUnavailable), http.StatusServiceUnavailable},
		{"unexpected", "date=2024-01-01", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			assert.Equal(t, tt.status, serve(h, tt.query).Code)
		})
	}
}
