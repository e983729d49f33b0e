package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

// Settings параметры движка доступности
// Значения по умолчанию задаются конфигурацией сервиса и перекрываются настройками заведения
type Settings struct {
	Location               *time.Location
	DefaultTableCapacity   int
	DefaultDurationMinutes int
	SlotDurationMinutes    int
	FallbackTime           string // время для записей без времени
	OpenTime               string
	CloseTime              string
	RequireSpecificTable   bool
}

// DefaultSettings возвращает настройки из доменных констант
func DefaultSettings() Settings {
	return Settings{
		Location:               time.UTC,
		DefaultTableCapacity:   domain.DefaultTableCapacity,
		DefaultDurationMinutes: domain.DefaultDurationMinutes,
		SlotDurationMinutes:    domain.DefaultSlotDurationMinutes,
		FallbackTime:           domain.DefaultFallbackTime,
		OpenTime:               domain.DefaultOpenTime,
		CloseTime:              domain.DefaultCloseTime,
	}
}

// Validate проверяет настройки
func (s Settings) Validate() error {
	if s.DefaultTableCapacity <= 0 {
		return fmt.Errorf("%w: default table capacity must be positive", ErrInvalidSettings)
	}
	if s.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: default duration must be positive", ErrInvalidSettings)
	}
	if s.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidSettings)
	}
	for name, value := range map[string]string{"fallback": s.FallbackTime, "open": s.OpenTime, "close": s.CloseTime} {
		if err := types.TimeString(value).Validate(); err != nil {
			return fmt.Errorf("%w: %s time: %v", ErrInvalidSettings, name, err)
		}
	}
	return nil
}

// WithVenue перекрывает настройки ненулевыми значениями заведения
func (s Settings) WithVenue(v *domain.VenueSettings) (Settings, error) {
	if v == nil {
		return s, nil
	}

	if tz := strings.TrimSpace(v.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return s, fmt.Errorf("%w: timezone %q: %v", ErrInvalidSettings, tz, err)
		}
		s.Location = loc
	}
	if v.OpenTime != "" {
		s.OpenTime = v.OpenTime
	}
	if v.CloseTime != "" {
		s.CloseTime = v.CloseTime
	}
	if v.SlotDurationMinutes > 0 {
		s.SlotDurationMinutes = v.SlotDurationMinutes
	}
	if v.DefaultDurationMinutes > 0 {
		s.DefaultDurationMinutes = v.DefaultDurationMinutes
	}
	if v.DefaultTableCapacity > 0 {
		s.DefaultTableCapacity = v.DefaultTableCapacity
	}
	s.RequireSpecificTable = s.RequireSpecificTable || v.RequireSpecificTable

	return s, s.Validate()
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// ParseDate парсит дату "YYYY-MM-DD" как полночь в часовом поясе заведения
func (s Settings) ParseDate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), s.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidQuery, date)
	}
	return d, nil
}

// Instant возвращает момент date@clock в часовом поясе заведения
func (s Settings) Instant(date, clock string) (time.Time, error) {
	d, err := s.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidQuery, clock)
	}
	return ts.On(d, s.location())
}

// SlotInstant возвращает момент слота clock смены, открывшейся в date
// Если заведение работает после полуночи, время раньше открытия относится к date+1,
// как в сетке DaySlots
func (s Settings) SlotInstant(date, clock string) (time.Time, error) {
	instant, err := s.Instant(date, clock)
	if err != nil {
		return time.Time{}, err
	}

	openMin, openErr := types.TimeString(s.OpenTime).Minutes()
	closeMin, closeErr := types.TimeString(s.CloseTime).Minutes()
	if openErr != nil || closeErr != nil || closeMin > openMin {
		return instant, nil
	}

	clockMin, err := types.TimeString(strings.TrimSpace(clock)).Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidQuery, clock)
	}
	if clockMin < openMin {
		y, m, d := instant.Date()
		h, mi, sec := instant.Clock()
		return time.Date(y, m, d+1, h, mi, sec, 0, s.location()), nil
	}
	return instant, nil
}

// ServiceWindow возвращает часы работы на дату [open, close)
// Закрытие не позже открытия означает работу после полуночи
func (s Settings) ServiceWindow(date time.Time) (time.Time, time.Time, error) {
	openMin, err := types.TimeString(s.OpenTime).Minutes()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: open time: %v", ErrInvalidSettings, err)
	}
	closeMin, err := types.TimeString(s.CloseTime).Minutes()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: close time: %v", ErrInvalidSettings, err)
	}
	if closeMin <= openMin {
		closeMin += 24 * 60
	}

	y, m, d := date.Date()
	loc := s.location()
	return time.Date(y, m, d, 0, openMin, 0, 0, loc), time.Date(y, m, d, 0, closeMin, 0, 0, loc), nil
}

// DayWindow возвращает выборку бронирований, которые могут касаться дня date
// (включая работу после полуночи и брони, начавшиеся накануне)
func (s Settings) DayWindow(venueID, date string) (domain.ReservationWindow, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return domain.ReservationWindow{}, err
	}
	_, closeAt, err := s.ServiceWindow(day)
	if err != nil {
		return domain.ReservationWindow{}, err
	}

	from := day
	to := day.AddDate(0, 0, 1)
	if closeAt.After(to) {
		to = closeAt
	}

	return domain.ReservationWindow{
		VenueID: venueID,
		From:    from,
		To:      to,
		Dates: []string{
			day.AddDate(0, 0, -1).Format(domain.DateFormat),
			day.Format(domain.DateFormat),
			day.AddDate(0, 0, 1).Format(domain.DateFormat),
		},
	}, nil
}
