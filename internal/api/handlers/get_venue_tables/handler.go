package get_venue_tables

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/1122padelclub/padel-app-sub002/internal/api/handlers"
)

const msgMissingVenueID = "ID заведения обязателен"

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// TablesResponse HTTP response model
type TablesResponse struct {
	VenueID string                   `json:"venueId"`
	Tables  []handlers.TableResponse `json:"tables"`
}

// Handle GET /api/v1/venues/{venueId}/tables
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := strings.TrimSpace(mux.Vars(r)["venueId"])
	if venueID == "" {
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	settings, _, err := h.service.Settings(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{id}/tables - Failed to resolve settings: venue_id=%s, error=%v", venueID, err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	tables, err := h.service.ActiveTables(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{id}/tables - Failed to list tables: venue_id=%s, error=%v", venueID, err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /venues/{id}/tables - Tables retrieved: venue_id=%s, count=%d", venueID, len(tables))
	handlers.RespondJSON(w, http.StatusOK, TablesResponse{
		VenueID: venueID,
		Tables:  handlers.FromDomainTables(tables, settings.DefaultTableCapacity),
	})
}
