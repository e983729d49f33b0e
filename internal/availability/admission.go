package availability

import (
	"fmt"
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

const (
	reasonTableAvailable = "table available"
	reasonPooledCapacity = "seated from pooled capacity"
	reasonNoTables       = "venue has no active tables"
	reasonPartyTooLarge  = "party exceeds the largest table"
	reasonNoFreeTable    = "no free table fits the party"
	reasonNotEnoughSeats = "not enough free seats for the requested window"
)

// IsSlotAvailable проверяет, можно ли посадить группу partySize на date@clock на durationMinutes
// durationMinutes = 0 означает длительность по умолчанию
//
// 1. Окно запроса [start, start+duration)
// 2. Столик занят, если к нему привязана пересекающаяся бронь
// 3. Брони без столика занимают общий пул: после выдачи столика
//    свободной вместимости должно хватить на пиковый спрос пула
// 4. Подходящий столик: не занят, вместимость >= partySize
// 5. Лучший столик - минимальный остаток мест, при равенстве - порядок отображения
// 6. Если столика нет и заведение не требует конкретного столика,
//    достаточно свободной общей вместимости на всё окно
//
// Это предварительная проверка по снапшоту. Окончательное решение принимается
// при атомарной записи бронирования.
func (v *View) IsSlotAvailable(date, clock string, partySize, durationMinutes int) (*domain.Admission, error) {
	start, err := v.settings.SlotInstant(date, clock)
	if err != nil {
		return nil, err
	}

	return v.AdmitAt(start, partySize, durationMinutes)
}

// AdmitAt то же, что IsSlotAvailable, для готового момента времени
func (v *View) AdmitAt(start time.Time, partySize, durationMinutes int) (*domain.Admission, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be positive, got %d", ErrInvalidQuery, partySize)
	}
	if durationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative, got %d", ErrInvalidQuery, durationMinutes)
	}
	if durationMinutes == 0 {
		durationMinutes = v.settings.DefaultDurationMinutes
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	admission := &domain.Admission{
		Start:           start,
		End:             end,
		PartySize:       partySize,
		CandidateTables: []*domain.Table{},
	}

	overlapping := OverlappingWindow(v.reservations, start, end)

	conflicted := make(map[string]bool)
	pool := make([]domain.NormalizedReservation, 0)
	for _, r := range overlapping {
		if table, ok := v.boundTable(r); ok {
			conflicted[table.ID] = true
			continue
		}
		pool = append(pool, r)
	}
	poolPeak := peakDemand(pool, start, end)

	freeCapacity := 0
	for _, table := range v.tables {
		if !conflicted[table.ID] {
			freeCapacity += table.EffectiveCapacity(v.settings.DefaultTableCapacity)
		}
	}

	largest := 0
	bestFit := -1
	for _, table := range v.tables {
		capacity := table.EffectiveCapacity(v.settings.DefaultTableCapacity)
		if capacity > largest {
			largest = capacity
		}
		if conflicted[table.ID] || capacity < partySize {
			continue
		}
		if freeCapacity-capacity < poolPeak {
			continue
		}

		admission.CandidateTables = append(admission.CandidateTables, table)
		// таблицы уже в порядке отображения, строгое сравнение сохраняет первый при равенстве
		if fit := capacity - partySize; bestFit < 0 || fit < bestFit {
			bestFit = fit
			admission.BestTable = table
		}
	}

	available := v.totalCapacity - peakDemand(overlapping, start, end)
	if available < 0 {
		available = 0
	}
	admission.AvailableCapacity = available

	switch {
	case admission.BestTable != nil:
		admission.Available = true
		admission.Path = domain.AdmissionTable
		admission.Reason = reasonTableAvailable
	case !v.settings.RequireSpecificTable && len(v.tables) > 0 && available >= partySize:
		admission.Available = true
		admission.Path = domain.AdmissionPool
		admission.Reason = reasonPooledCapacity
	case len(v.tables) == 0:
		admission.Reason = reasonNoTables
	case largest < partySize && v.settings.RequireSpecificTable:
		admission.Reason = reasonPartyTooLarge
	case v.settings.RequireSpecificTable:
		admission.Reason = reasonNoFreeTable
	default:
		admission.Reason = reasonNotEnoughSeats
	}

	return admission, nil
}
