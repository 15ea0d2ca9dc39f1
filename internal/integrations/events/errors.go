package events

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrPublish возвращается, если не удалось опубликовать событие
	ErrPublish = errors.New("events: failed to publish event")
)
