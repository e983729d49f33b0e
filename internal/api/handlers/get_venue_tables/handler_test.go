package get_venue_tables

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	tables []*domain.Table
	err    error
}

func (f fakeService) ActiveTables(_ context.Context, _ string) ([]*domain.Table, error) {
	return f.tables, f.err
}

func (f fakeService) Settings(_ context.Context, _ string) (availability.Settings, *domain.VenueSettings, error) {
	return availability.DefaultSettings(), &domain.VenueSettings{}, nil
}

func serve(h *Handler, venueID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/venue/tables", nil)
	req = mux.SetURLVars(req, map[string]string{"venueId": venueID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	h := NewHandler(fakeService{tables: []*domain.Table{
		{ID: "t1", VenueID: "v1", Number: "1", Capacity: 2},
		{ID: "t2", VenueID: "v1", Number: "Barra"},
	}}, nopLogger{})

	rec := serve(h, "v1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body TablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "v1", body.VenueID)
	require.Len(t, body.Tables, 2)
	assert.Equal(t, domain.DefaultTableCapacity, body.Tables[1].Capacity)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(fakeService{err: errors.New("db down")}, nopLogger{})
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "v1").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, " ").Code)
}
