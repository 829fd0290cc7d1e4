package tagcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache кэш в Redis с инвалидацией по тегам.
// Значение хранится по ключу {prefix}:data:{key}, для каждого тега ведётся
// множество {prefix}:tag:{tag} с ключами, помеченными этим тегом.
// Инвалидация тега удаляет все помеченные ключи и само множество,
// поэтому повторная инвалидация того же тега ничего не меняет.
// Перед удалением инвалидация увеличивает поколение тега {prefix}:gen:{tag}:
// писатель сравнивает поколение до чтения источника и после Set
// и удаляет свою запись, если между ними прошла инвалидация.
type Cache struct {
	client RedisClient
	prefix string
}

// New создает кэш поверх клиента go-redis
func New(client RedisClient, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Get возвращает значение по ключу. found = false, если ключа нет
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: key=%s: %v", ErrRead, key, err)
	}
	return value, true, nil
}

// Set сохраняет значение с TTL и помечает ключ тегами
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	dataKey := c.dataKey(key)

	if err := c.client.Set(ctx, dataKey, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrWrite, key, err)
	}

	for _, tag := range tags {
		tagKey := c.tagKey(tag)
		if err := c.client.SAdd(ctx, tagKey, dataKey).Err(); err != nil {
			return fmt.Errorf("%w: tag=%s: %v", ErrWrite, tag, err)
		}
		// Множество тега живёт не меньше самых свежих помеченных ключей
		if ttl > 0 {
			if err := c.client.Expire(ctx, tagKey, 2*ttl).Err(); err != nil {
				return fmt.Errorf("%w: tag=%s expire: %v", ErrWrite, tag, err)
			}
		}
	}

	return nil
}

// Invalidate удаляет все ключи, помеченные тегом
func (c *Cache) Invalidate(ctx context.Context, tag string) error {
	tagKey := c.tagKey(tag)

	if err := c.client.Incr(ctx, c.genKey(tag)).Err(); err != nil {
		return fmt.Errorf("%w: tag=%s generation: %v", ErrInvalidate, tag, err)
	}

	keys, err := c.client.SMembers(ctx, tagKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: tag=%s: %v", ErrInvalidate, tag, err)
	}

	keys = append(keys, tagKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: tag=%s: %v", ErrInvalidate, tag, err)
	}

	return nil
}

// Generation возвращает номер поколения тега. До первой инвалидации 0
func (c *Cache) Generation(ctx context.Context, tag string) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(tag)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: tag=%s generation: %v", ErrRead, tag, err)
	}
	return gen, nil
}

// Delete удаляет значение по ключу. Отсутствие ключа не ошибка
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.dataKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrWrite, key, err)
	}
	return nil
}

func (c *Cache) dataKey(key string) string {
	return fmt.Sprintf("%s:data:%s", c.prefix, key)
}

func (c *Cache) tagKey(tag string) string {
	return fmt.Sprintf("%s:tag:%s", c.prefix, tag)
}

func (c *Cache) genKey(tag string) string {
	return fmt.Sprintf("%s:gen:%s", c.prefix, tag)
}
