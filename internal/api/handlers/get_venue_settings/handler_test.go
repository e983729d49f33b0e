package get_venue_settings

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

	"github.com/1122padelclub/padel-app-sub002/internal/service/venues/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	resp *models.SettingsResponse
	err  error
}

func (f fakeService) Get(_ context.Context, _ string) (*models.SettingsResponse, error) {
	return f.resp, f.err
}

func serve(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/settings", nil)
	req = mux.SetURLVars(req, map[string]string{"venueId": "v1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	h := NewHandler(fakeService{resp: &models.SettingsResponse{
		VenueID:        "v1",
		Timezone:       "UTC",
		OpenTime:       "12:00",
		CloseTime:      "23:00",
		ClosedWeekdays: []int{},
		IsDefault:      true,
	}}, nopLogger{})

	rec := serve(h)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsDefault)
	assert.Equal(t, "12:00", body.OpenTime)
}

func TestHandle_Error(t *testing.T) {
	h := NewHandler(fakeService{err: errors.New("db down")}, nopLogger{})
	assert.Equal(t, http.StatusInternalServerError, serve(h).Code)
}
