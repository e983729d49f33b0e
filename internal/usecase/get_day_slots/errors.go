package get_day_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_slots: invalid input data")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_day_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_day_slots: date is too far in the future")

	// ErrUnavailable возвращается, когда не удалось прочитать данные заведения
	ErrUnavailable = errors.New("get_day_slots: availability data is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_slots: internal error")
)
