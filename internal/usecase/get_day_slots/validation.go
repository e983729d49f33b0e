package get_day_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VenueID) == "" {
		return fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if req.PartySize < 0 || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between 0 and %d", ErrInvalidInput, domain.MaxPartySize)
	}

	return nil
}

// validateDate проверяет, что по дате можно показывать слоты для бронирования
func validateDate(day, now time.Time, venue *domain.VenueSettings) error {
	local := now.In(day.Location())
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, day.Location())

	if day.Before(today) {
		return ErrInvalidDate
	}

	if venue.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, venue.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, venue.AdvanceBookingDays)
	}

	return nil
}
