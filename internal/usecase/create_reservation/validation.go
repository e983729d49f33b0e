package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VenueID) == "" {
		return fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}

	if req.PartySize <= 0 || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between 1 and %d", ErrInvalidInput, domain.MaxPartySize)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if err := types.TimeString(req.Time).Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что день подходит для бронирования
func validateDate(day, now time.Time, venue *domain.VenueSettings) error {
	local := now.In(day.Location())
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, day.Location())

	// Проверяем, что дата не в прошлом
	if day.Before(today) {
		return ErrInvalidDate
	}

	// Проверяем ограничение advanceBookingDays
	if venue.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, venue.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, venue.AdvanceBookingDays)
	}

	if venue.IsClosedOn(day) {
		return ErrVenueClosed
	}

	return nil
}

// validateStart проверяет, что до начала осталось не меньше minBookingNoticeMinutes
func validateStart(start, now time.Time, minNoticeMinutes int) error {
	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if start.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}
	return nil
}

// withinServiceHours проверяет, что начало попадает в часы работы смены дня day
// Для работы после полуночи конец смены приходится на следующий день
func withinServiceHours(settings availability.Settings, day, start time.Time) (bool, error) {
	openAt, closeAt, err := settings.ServiceWindow(day)
	if err != nil {
		return false, err
	}
	return !start.Before(openAt) && start.Before(closeAt), nil
}
