package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrInvalidStatus возвращается для неизвестного статуса
	ErrInvalidStatus = errors.New("reservations.service: invalid reservation status")

	// ErrInvalidTransition возвращается, если жизненный цикл не допускает смену статуса
	ErrInvalidTransition = errors.New("reservations.service: status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
