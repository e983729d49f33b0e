package mongo

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к MongoDB
	ErrConnect = errors.New("mongo.storage: failed to connect")

	// ErrQuery возвращается при ошибке выполнения запроса
	ErrQuery = errors.New("mongo.storage: failed to execute query")

	// ErrDecode возвращается при ошибке чтения документов
	ErrDecode = errors.New("mongo.storage: failed to decode document")
)
