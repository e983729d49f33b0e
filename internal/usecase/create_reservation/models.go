package create_reservation

import "github.com/1122padelclub/padel-app-sub002/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	VenueID         string  // ID заведения
	Date            string  // Дата "YYYY-MM-DD" в часовом поясе заведения
	Time            string  // Время "HH:MM"
	PartySize       int     // Количество гостей
	DurationMinutes int     // 0 = длительность заведения по умолчанию
	TableID         *string // Желаемый столик (опционально)
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Notes           *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Path        domain.AdmissionPath // стол или общая вместимость
}
