package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrVenueClosed возвращается, когда заведение закрыто в указанный день
	ErrVenueClosed = errors.New("create_reservation: venue is closed on this date")

	// ErrOutsideServiceHours возвращается, когда время вне часов работы
	ErrOutsideServiceHours = errors.New("create_reservation: time is outside service hours")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда группу некуда посадить
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrTableNotAvailable возвращается, когда выбранный столик занят или мал для группы
	ErrTableNotAvailable = errors.New("create_reservation: requested table is not available")

	// ErrBusy возвращается, если день заведения занят другим бронированием дольше ожидания
	ErrBusy = errors.New("create_reservation: another reservation is in progress, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
