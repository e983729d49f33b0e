package availability

import "errors"

var (
	// ErrInvalidQuery возвращается при некорректных параметрах запроса (дата, время, размер группы, длительность)
	ErrInvalidQuery = errors.New("availability: invalid query")

	// ErrMalformedRecord возвращается для записи бронирования, которую нельзя нормализовать
	ErrMalformedRecord = errors.New("availability: malformed reservation record")

	// ErrInvalidSettings возвращается при некорректной конфигурации движка
	ErrInvalidSettings = errors.New("availability: invalid settings")
)
