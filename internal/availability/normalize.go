package availability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

// instantLayouts форматы текстовых моментов времени, встречающиеся в документах
// Форматы без зоны трактуются как время заведения
var instantLayouts = []struct {
	layout  string
	hasZone bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
}

// Normalize приводит запись бронирования к интервалу [Start, End)
//
// Приоритет источников:
// 1. StartAt (или StartAtText) - абсолютный момент
// 2. ReservationDate + ReservationTime - локальное время заведения
// 3. дата CreatedAt + FallbackTime - деградированные данные
//
// End = EndAt, если он задан и позже Start, иначе Start + длительность
// (длительность записи или DefaultDurationMinutes).
func Normalize(r *domain.Reservation, s Settings) (domain.NormalizedReservation, error) {
	if r == nil {
		return domain.NormalizedReservation{}, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}
	if r.PartySize <= 0 {
		return domain.NormalizedReservation{}, fmt.Errorf("%w: id=%s party size %d", ErrMalformedRecord, r.ID, r.PartySize)
	}
	if r.DurationMinutes < 0 {
		return domain.NormalizedReservation{}, fmt.Errorf("%w: id=%s negative duration %d", ErrMalformedRecord, r.ID, r.DurationMinutes)
	}

	start, source, err := resolveStart(r, s)
	if err != nil {
		return domain.NormalizedReservation{}, fmt.Errorf("%w: id=%s %v", ErrMalformedRecord, r.ID, err)
	}

	duration := s.DefaultDurationMinutes
	if r.DurationMinutes > 0 {
		duration = r.DurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	if explicitEnd, ok := resolveEnd(r, s); ok && explicitEnd.After(start) {
		end = explicitEnd
	}

	status, _ := domain.ParseReservationStatus(string(r.Status))

	tableID := ""
	if r.IsAssigned() {
		tableID = *r.TableID
	}

	return domain.NormalizedReservation{
		ID:        r.ID,
		TableID:   tableID,
		PartySize: r.PartySize,
		Status:    status,
		Start:     start,
		End:       end,
		Source:    source,
	}, nil
}

// NormalizeAll нормализует записи, пропуская некорректные
// Возвращает результат, отсортированный по началу, и количество пропущенных записей
func NormalizeAll(records []*domain.Reservation, s Settings, logger Logger) ([]domain.NormalizedReservation, int) {
	if logger == nil {
		logger = nopLogger{}
	}

	result := make([]domain.NormalizedReservation, 0, len(records))
	skipped := 0

	for _, record := range records {
		normalized, err := Normalize(record, s)
		if err != nil {
			skipped++
			logger.Warn("availability: skipping reservation record: %v", err)
			continue
		}
		if normalized.Source == domain.SourceCreatedAtFallback {
			logger.Warn("availability: reservation id=%s has no date, using createdAt date at %s",
				normalized.ID, s.FallbackTime)
		}
		result = append(result, normalized)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return result[i].ID < result[j].ID
	})

	return result, skipped
}

func resolveStart(r *domain.Reservation, s Settings) (time.Time, domain.NormalizationSource, error) {
	loc := s.location()

	if r.StartAt != nil && !r.StartAt.IsZero() {
		return r.StartAt.In(loc), domain.SourceInstant, nil
	}

	if text := strings.TrimSpace(r.StartAtText); text != "" {
		t, err := parseInstant(text, loc)
		if err != nil {
			return time.Time{}, "", err
		}
		return t, domain.SourceInstant, nil
	}

	if date := strings.TrimSpace(r.ReservationDate); date != "" {
		day, err := parseLegacyDate(date, loc)
		if err != nil {
			return time.Time{}, "", err
		}
		clock := strings.TrimSpace(r.ReservationTime)
		if clock == "" {
			clock = s.FallbackTime
		}
		ts, err := types.NewTimeStringFromString(clock)
		if err != nil {
			return time.Time{}, "", fmt.Errorf("reservation time %q: %v", r.ReservationTime, err)
		}
		t, err := ts.On(day, loc)
		if err != nil {
			return time.Time{}, "", err
		}
		return t, domain.SourceLegacyDateTime, nil
	}

	if !r.CreatedAt.IsZero() {
		ts, err := types.NewTimeStringFromString(s.FallbackTime)
		if err != nil {
			return time.Time{}, "", fmt.Errorf("fallback time %q: %v", s.FallbackTime, err)
		}
		t, err := ts.On(r.CreatedAt.In(loc), loc)
		if err != nil {
			return time.Time{}, "", err
		}
		return t, domain.SourceCreatedAtFallback, nil
	}

	return time.Time{}, "", fmt.Errorf("no start instant, reservation date or createdAt")
}

func resolveEnd(r *domain.Reservation, s Settings) (time.Time, bool) {
	if r.EndAt != nil && !r.EndAt.IsZero() {
		return r.EndAt.In(s.location()), true
	}
	if text := strings.TrimSpace(r.EndAtText); text != "" {
		t, err := parseInstant(text, s.location())
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseInstant(text string, loc *time.Location) (time.Time, error) {
	for _, l := range instantLayouts {
		if l.hasZone {
			if t, err := time.Parse(l.layout, text); err == nil {
				return t.In(loc), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(l.layout, text, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable instant %q", text)
}

// parseLegacyDate принимает "YYYY-MM-DD" или строку, начинающуюся с даты ("2024-01-01T00:00:00Z")
func parseLegacyDate(date string, loc *time.Location) (time.Time, error) {
	if len(date) >= len(domain.DateFormat) {
		if d, err := time.ParseInLocation(domain.DateFormat, date[:len(domain.DateFormat)], loc); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("reservation date %q", date)
}

// LocalDate возвращает дату начала брони в часовом поясе заведения
func LocalDate(r *domain.Reservation, s Settings) (string, error) {
	n, err := Normalize(r, s)
	if err != nil {
		return "", err
	}
	return n.Start.In(s.location()).Format(domain.DateFormat), nil
}
