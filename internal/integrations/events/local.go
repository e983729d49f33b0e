package events

import (
	"context"
	"sync"
)

// LocalBus события внутри процесса, когда NATS отключен
type LocalBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// NewLocalBus создает шину в памяти
func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[int]Handler)}
}

// Publish синхронно вызывает всех подписчиков
func (b *LocalBus) Publish(ctx context.Context, event ReservationChanged) error {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, event)
	}
	return nil
}

// Subscribe регистрирует обработчик
func (b *LocalBus) Subscribe(_ context.Context, handler Handler) (func(), error) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}, nil
}

// Close ничего не делает
func (b *LocalBus) Close() error {
	return nil
}
