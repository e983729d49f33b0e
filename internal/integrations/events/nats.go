package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBus публикация и подписка на события через NATS
type NATSBus struct {
	conn   *nats.Conn
	logger Logger
}

// Connect подключается к NATS
func Connect(url, name string, logger Logger) (*NATSBus, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("events: disconnected from NATS: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("events: reconnected to NATS %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, url, err)
	}
	return &NATSBus{conn: conn, logger: logger}, nil
}

// Publish публикует событие в тему заведения
func (b *NATSBus) Publish(ctx context.Context, event ReservationChanged) error {
	data, err := encode(event)
	if err != nil {
		return err
	}
	if err := b.conn.Publish(Subject(event.VenueID), data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, Subject(event.VenueID), err)
	}
	return nil
}

// Subscribe подписывается на изменения всех заведений
// Возвращает функцию отписки
func (b *NATSBus) Subscribe(ctx context.Context, handler Handler) (func(), error) {
	sub, err := b.conn.Subscribe(SubjectAll, func(msg *nats.Msg) {
		event, err := decode(msg.Subject, msg.Data)
		if err != nil {
			b.logger.Warn("events: skipping message: %v", err)
			return
		}
		handler(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSubscribe, SubjectAll, err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn("events: failed to unsubscribe: %v", err)
		}
	}, nil
}

// Close сбрасывает буфер и закрывает соединение
func (b *NATSBus) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}
