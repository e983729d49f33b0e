package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		status  int
		code    string
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "плохо") }, http.StatusBadRequest, "bad_request", "плохо"},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "нет") }, http.StatusNotFound, "not_found", "нет"},
		{"conflict", func(w http.ResponseWriter) { RespondConflict(w, "занято") }, http.StatusConflict, "conflict", "занято"},
		{"unavailable", RespondServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable", MsgDataUnavailable},
		{"internal", RespondInternalError, http.StatusInternalServerError, "internal_error", msgInternalError},
		{"unmapped", func(w http.ResponseWriter) { RespondError(w, http.StatusForbidden, "x") }, http.StatusForbidden, "forbidden", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var ok payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, DecodeJSON(req, &ok))
	assert.Equal(t, "Ana", ok.Name)

	for _, body := range []string{``, `{"name":1}`, `{"unknown":true}`, `{"name":"a"}{"name":"b"}`} {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		assert.Error(t, DecodeJSON(req, &p), body)
	}
}

func TestFromDomainSnapshot(t *testing.T) {
	assert.Nil(t, FromDomainSnapshot(nil))

	at := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	resp := FromDomainSnapshot(&domain.OccupancySnapshot{
		Time:              at,
		TotalTables:       3,
		OccupiedTables:    1,
		AvailableTables:   2,
		TotalCapacity:     12,
		OccupiedCapacity:  4,
		AvailableCapacity: 8,
		OccupancyRate:     33.33,
		Reservations:      []domain.NormalizedReservation{{ID: "r1"}},
	})

	assert.Equal(t, at, resp.Time)
	assert.Equal(t, 8, resp.AvailableCapacity)
	assert.Equal(t, []string{}, resp.OccupiedTableIDs)
	assert.Equal(t, []string{"r1"}, resp.ReservationIDs)
}

func TestFromDomainTables(t *testing.T) {
	tables := FromDomainTables([]*domain.Table{
		{ID: "t1", VenueID: "v", Number: "1", Capacity: 2},
		{ID: "t2", VenueID: "v", Number: "Barra"},
	}, 4)

	require.Len(t, tables, 2)
	assert.Equal(t, 2, tables[0].Capacity)
	assert.Equal(t, 4, tables[1].Capacity)
	assert.Equal(t, "Barra", tables[1].Number)
}

func TestErrorMessagesAreRussian(t *testing.T) {
	for _, msg := range []string{MsgDataUnavailable, msgInternalError} {
		hasCyrillic := strings.IndexFunc(msg, func(r rune) bool { return unicode.In(r, unicode.Cyrillic) }) >= 0
		assert.True(t, hasCyrillic, msg)
	}
}
