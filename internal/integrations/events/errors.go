package events

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к NATS
	ErrConnect = errors.New("events: failed to connect")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: failed to publish")

	// ErrSubscribe возвращается при ошибке подписки
	ErrSubscribe = errors.New("events: failed to subscribe")

	// ErrDecode возвращается для сообщения, которое не удалось разобрать
	ErrDecode = errors.New("events: failed to decode message")
)
