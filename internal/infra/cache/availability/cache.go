// Package availability redis-кеш представлений доступности
// Допустимо небольшое устаревание при чтении (короткий TTL);
// решение о записи бронирования никогда не принимается по кешу
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кеш представлений доступности поверх Redis
// Все ошибки Redis деградируют в cache miss - чтение доступности
// не должно падать из-за недоступного кеша
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log Logger
}

// New создает кеш доступности
func New(addr string, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
		log: log,
	}
}

// GetDaySlots возвращает закешированное дневное представление
// Второе значение false означает cache miss
func (c *Cache) GetDaySlots(ctx context.Context, date time.Time, durationMinutes int) ([]engine.Slot, bool) {
	key := fmt.Sprintf(keyDay, date.Format("2006-01-02"), durationMinutes)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache: get %s failed: %v", key, err)
		return nil, false
	}

	var slots []engine.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		c.log.Warn("availability cache: unmarshal %s failed: %v", key, err)
		return nil, false
	}

	return slots, true
}

// SetDaySlots кеширует дневное представление с коротким TTL
func (c *Cache) SetDaySlots(ctx context.Context, date time.Time, durationMinutes int, slots []engine.Slot) {
	key := fmt.Sprintf(keyDay, date.Format("2006-01-02"), durationMinutes)

	data, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("availability cache: marshal %s failed: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache: set %s failed: %v", key, err)
	}
}

// GetMonth возвращает закешированное месячное представление
func (c *Cache) GetMonth(ctx context.Context, year, month, durationMinutes int) (map[string]bool, bool) {
	key := fmt.Sprintf(keyMonth, year, month, durationMinutes)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache: get %s failed: %v", key, err)
		return nil, false
	}

	var days map[string]bool
	if err := json.Unmarshal(data, &days); err != nil {
		c.log.Warn("availability cache: unmarshal %s failed: %v", key, err)
		return nil, false
	}

	return days, true
}

// SetMonth кеширует месячное представление
func (c *Cache) SetMonth(ctx context.Context, year, month, durationMinutes int, days map[string]bool) {
	key := fmt.Sprintf(keyMonth, year, month, durationMinutes)

	data, err := json.Marshal(days)
	if err != nil {
		c.log.Warn("availability cache: marshal %s failed: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache: set %s failed: %v", key, err)
	}
}

// InvalidateDate сбрасывает представления, затронутые изменением бронирования:
// дневные ключи даты и месячные ключи её месяца, для всех длительностей
// Вызывается после создания, отмены и смены статуса бронирования
func (c *Cache) InvalidateDate(ctx context.Context, date time.Time) {
	patterns := []string{
		fmt.Sprintf(patternDay, date.Format("2006-01-02")),
		fmt.Sprintf(patternMonth, date.Year(), int(date.Month())),
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				c.log.Warn("availability cache: del %s failed: %v", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			c.log.Warn("availability cache: scan %s failed: %v", pattern, err)
		}
	}
}

// InvalidateAll сбрасывает все представления доступности
// Вызывается при смене настроек компании: рабочие часы и гранулярность
// влияют на каждую дату сразу
func (c *Cache) InvalidateAll(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, patternAll, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("availability cache: del %s failed: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("availability cache: scan %s failed: %v", patternAll, err)
	}
}

// Close закрывает подключение к Redis
func (c *Cache) Close() error {
	return c.rdb.Close()
}
