package availability

import (
	"fmt"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

// DaySlots генерирует сетку времени от открытия до закрытия с шагом slotDurationMinutes
// Закрытие не входит в сетку: 12:00-15:00 с шагом 30 дает 12:00 ... 14:30.
// Закрытие не позже открытия означает работу после полуночи (18:00-01:00 дает ... 00:30).
func DaySlots(date, openTime, closeTime string, slotDurationMinutes int) ([]string, error) {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidQuery, date)
	}

	offsets, err := gridOffsets(openTime, closeTime, slotDurationMinutes)
	if err != nil {
		return nil, err
	}

	slots := make([]string, len(offsets))
	for i, m := range offsets {
		slots[i] = types.FromMinutes(m).String()
	}
	return slots, nil
}

// gridOffsets минуты от полуночи дня date для каждого слота (могут превышать сутки)
func gridOffsets(openTime, closeTime string, slotDurationMinutes int) ([]int, error) {
	if slotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidQuery, slotDurationMinutes)
	}

	openMin, err := types.TimeString(openTime).Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: open time %q", ErrInvalidQuery, openTime)
	}
	closeMin, err := types.TimeString(closeTime).Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: close time %q", ErrInvalidQuery, closeTime)
	}
	if closeMin <= openMin {
		closeMin += 24 * 60
	}

	offsets := make([]int, 0, (closeMin-openMin)/slotDurationMinutes+1)
	for m := openMin; m < closeMin; m += slotDurationMinutes {
		offsets = append(offsets, m)
	}
	return offsets, nil
}
