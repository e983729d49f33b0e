package get_day_slots

import "github.com/1122padelclub/padel-app-sub002/internal/domain"

// Request модель запроса на получение слотов дня
type Request struct {
	VenueID   string
	Date      string // "YYYY-MM-DD" в часовом поясе заведения
	PartySize int    // 0 = любая группа, слот доступен, пока есть свободные места
}

// Response модель ответа со слотами дня
type Response struct {
	VenueID        string
	Date           string
	Closed         bool
	Slots          []domain.SlotOccupancy
	SkippedRecords int
}
