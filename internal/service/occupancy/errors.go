package occupancy

import "errors"

var (
	// ErrInvalidQuery возвращается при некорректных параметрах запроса
	ErrInvalidQuery = errors.New("occupancy.service: invalid query")

	// ErrDataUnavailable возвращается, если не удалось получить данные заведения
	ErrDataUnavailable = errors.New("occupancy.service: could not compute availability")
)
