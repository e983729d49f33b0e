package lock

import (
	"context"
	"fmt"
	"sync"
)

// LocalLocker блокировка в памяти процесса, когда Redis отключен
// Защищает только от гонок внутри одного экземпляра сервиса
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*localSlot
}

// localSlot блокировка одного ключа и число ее владельцев и ожидающих
type localSlot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker создает блокировку в памяти
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*localSlot)}
}

// Acquire ждет и захватывает блокировку дня заведения
// Ключ удаляется, когда его никто не держит и не ждет
func (l *LocalLocker) Acquire(ctx context.Context, venueID, date string) (func(), error) {
	key := Key(venueID, date)

	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.unref(key, slot)
			})
		}, nil
	case <-ctx.Done():
		l.unref(key, slot)
		return nil, fmt.Errorf("%w: %s: %v", ErrLockBusy, key, ctx.Err())
	}
}

func (l *LocalLocker) unref(key string, slot *localSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

// Len число ключей в памяти
func (l *LocalLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
