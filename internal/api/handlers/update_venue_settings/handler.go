package update_venue_settings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
	"github.com/1122padelclub/padel-app-sub002/internal/service/venues"
	"github.com/1122padelclub/padel-app-sub002/internal/service/venues/models"
)

const (
	msgMissingVenueID     = "ID заведения обязателен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки заведения"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/settings
// Обновляются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.Update(r.Context(), venueID, &req)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/settings - Invalid settings: venue_id=%s, error=%v", venueID, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidSettings+": "+validationDetail(err))

		default:
			h.logger.Error("PUT /venues/{id}/settings - Failed to update settings: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/settings - Settings updated: venue_id=%s", venueID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}

// validationDetail убирает префикс sentinel-ошибки из сообщения
func validationDetail(err error) string {
	msg := err.Error()
	prefix := venues.ErrInvalidInput.Error() + ": "
	if idx := strings.Index(msg, prefix); idx >= 0 {
		return msg[idx+len(prefix):]
	}
	return msg
}
