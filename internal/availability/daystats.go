package availability

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

// DayStats сводка за день
//
// - в подсчет попадают брони, чей интервал пересекает календарный день
// - TotalReservations считает все такие брони, включая отмененные и неявки
// - TotalGuests и CapacityUtilization считаются только по статусам, занимающим места
// - OccupancyRate - пик процента занятых столиков по сетке слотов
// - CapacityUtilization - гостеминуты внутри часов работы / (вместимость * минуты работы) * 100
func (v *View) DayStats(date string) (*domain.DayOccupancyStats, error) {
	day, err := v.settings.ParseDate(date)
	if err != nil {
		return nil, err
	}
	dayEnd := day.AddDate(0, 0, 1)

	stats := &domain.DayOccupancyStats{
		Date:           day.Format(domain.DateFormat),
		TotalCapacity:  v.totalCapacity,
		SkippedRecords: v.skipped,
	}

	openAt, closeAt, err := v.settings.ServiceWindow(day)
	if err != nil {
		return nil, err
	}

	reservedSeatMinutes := 0.0
	for _, r := range v.reservations {
		if !(r.Start.Before(dayEnd) && r.End.After(day)) {
			continue
		}

		stats.TotalReservations++
		switch r.Status {
		case domain.StatusCancelled:
			stats.CancelledReservations++
		case domain.StatusNoShow:
			stats.NoShowReservations++
		case domain.StatusConfirmed:
			stats.ConfirmedReservations++
		case domain.StatusPending:
			stats.PendingReservations++
		}

		if !r.Status.IsOccupying() {
			continue
		}
		stats.TotalGuests += r.PartySize
		reservedSeatMinutes += float64(r.PartySize) * overlapMinutes(r.Start, r.End, openAt, closeAt)
	}

	grid, err := v.DayGrid(date)
	if err != nil {
		return nil, err
	}
	stats.SlotCount = len(grid)

	rateSum := 0.0
	for _, t := range grid {
		snapshot := v.OccupancyAt(t)
		rateSum += snapshot.OccupancyRate
		if snapshot.OccupancyRate > stats.OccupancyRate {
			stats.OccupancyRate = snapshot.OccupancyRate
			stats.PeakTime = types.NewTimeString(t).String()
		}
	}
	if len(grid) > 0 {
		stats.AverageOccupancyRate = rateSum / float64(len(grid))
	}

	availableSeatMinutes := float64(v.totalCapacity) * closeAt.Sub(openAt).Minutes()
	if availableSeatMinutes > 0 {
		utilization := reservedSeatMinutes / availableSeatMinutes * 100
		if utilization > 100 {
			utilization = 100
		}
		stats.CapacityUtilization = utilization
	}

	return stats, nil
}

// overlapMinutes длина пересечения [aStart, aEnd) и [bStart, bEnd) в минутах
func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) float64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Minutes()
}
