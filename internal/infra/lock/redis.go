package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockBusy возвращается, если блокировку не удалось получить за время ожидания
	ErrLockBusy = errors.New("lock: reservation lock is busy")

	// ErrLockBackend возвращается при ошибке Redis
	ErrLockBackend = errors.New("lock: backend error")
)

const (
	keyPrefix            = "reservation_lock"
	defaultRetryInterval = 50 * time.Millisecond
)

// releaseScript удаляет ключ, только если он принадлежит владельцу
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisLocker блокировка дня заведения в Redis
// Ключ reservation_lock:{venue}:{date}, значение - токен владельца, TTL защищает от зависших владельцев
type RedisLocker struct {
	client        redis.Cmdable
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	logger        Logger
}

// NewRedisLocker создает блокировку поверх клиента Redis
// ttl - время жизни ключа, ожидание освобождения ограничено тем же ttl
func NewRedisLocker(client redis.Cmdable, ttl time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		wait:          ttl,
		retryInterval: defaultRetryInterval,
		logger:        logger,
	}
}

// Key ключ блокировки для заведения и даты
func Key(venueID, date string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, venueID, date)
}

// Acquire ждет и захватывает блокировку дня заведения
// Возвращает функцию освобождения, которую нужно вызвать ровно один раз
func (l *RedisLocker) Acquire(ctx context.Context, venueID, date string) (func(), error) {
	key := Key(venueID, date)
	token := uuid.NewString()

	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: Acquire - setnx %s: %v", ErrLockBackend, key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockBusy, key)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockBusy, key, ctx.Err())
		case <-time.After(l.retryInterval):
		}
	}
}

// release освобождает ключ, если он все еще наш
// Используется отдельный контекст: запрос мог быть уже отменен
func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && l.logger != nil {
		l.logger.Warn("lock: failed to release %s: %v", key, err)
	}
}
