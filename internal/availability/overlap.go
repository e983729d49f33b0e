package availability

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// IsOccupying возвращает true для статусов, занимающих места
// cancelled и no_show места не занимают
func IsOccupying(status domain.ReservationStatus) bool {
	return status.IsOccupying()
}

// OverlappingAt возвращает бронирования, занимающие места в момент t (start <= t < end)
func OverlappingAt(reservations []domain.NormalizedReservation, t time.Time) []domain.NormalizedReservation {
	result := make([]domain.NormalizedReservation, 0)
	for _, r := range reservations {
		if r.OccupiesAt(t) {
			result = append(result, r)
		}
	}
	return result
}

// OverlappingWindow возвращает бронирования, пересекающиеся с окном [from, to)
// Граничащие интервалы (конец брони == начало окна) НЕ пересекаются
//
// Примеры для окна 11:30-12:00:
// - бронь 11:20-11:40 - пересечение
// - бронь 11:00-11:30 - нет (граничат)
// - бронь 12:00-12:30 - нет (граничат)
func OverlappingWindow(reservations []domain.NormalizedReservation, from, to time.Time) []domain.NormalizedReservation {
	result := make([]domain.NormalizedReservation, 0)
	for _, r := range reservations {
		if r.Overlaps(from, to) {
			result = append(result, r)
		}
	}
	return result
}

// SameDay грубая проверка принадлежности брони к календарному дню (по дате начала)
// Годится только для дневных сводок, не для занятости слотов
func SameDay(r domain.NormalizedReservation, date time.Time) bool {
	y1, m1, d1 := r.Start.In(date.Location()).Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// peakDemand максимальная сумма гостей одновременно внутри [from, to)
// Сумма меняется только в начале брони, поэтому достаточно проверить from и все начала внутри окна
func peakDemand(reservations []domain.NormalizedReservation, from, to time.Time) int {
	instants := []time.Time{from}
	for _, r := range reservations {
		if r.Start.After(from) && r.Start.Before(to) {
			instants = append(instants, r.Start)
		}
	}

	peak := 0
	for _, t := range instants {
		sum := 0
		for _, r := range reservations {
			if r.OccupiesAt(t) {
				sum += r.PartySize
			}
		}
		if sum > peak {
			peak = sum
		}
	}
	return peak
}
