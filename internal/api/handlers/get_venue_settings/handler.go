package get_venue_settings

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
)

const msgMissingVenueID = "ID заведения обязателен"

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

// Handle GET /api/v1/venues/{venueId}/settings
// Для заведения без сохраненных настроек возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	settings, err := h.service.Get(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{id}/settings - Failed to get settings: venue_id=%s, error=%v", venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{id}/settings - Settings retrieved: venue_id=%s, default=%t", venueID, settings.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
