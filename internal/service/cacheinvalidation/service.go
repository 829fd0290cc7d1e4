package cacheinvalidation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Coordinator единая точка инвалидации кэша после мутаций бронирований.
// Политика тегов определена в TagsFor, здесь только вызовы Invalidator.
type Coordinator struct {
	invalidator Invalidator
	metrics     MetricsRecorder
	logger      Logger
}

// NewCoordinator создает координатор инвалидации
func NewCoordinator(invalidator Invalidator, metrics MetricsRecorder, logger Logger) *Coordinator {
	return &Coordinator{
		invalidator: invalidator,
		metrics:     metrics,
		logger:      logger,
	}
}

// Invalidate сбрасывает объединённый набор тегов всех мутаций.
// Каждый тег сбрасывается ровно один раз; ошибка по одному тегу не
// останавливает остальные, все ошибки возвращаются вместе.
func (c *Coordinator) Invalidate(ctx context.Context, mutations ...Mutation) (TagSet, error) {
	tags := Merge(mutations...)

	var errs []error
	for _, tag := range tags {
		if err := c.invalidator.Invalidate(ctx, tag); err != nil {
			c.logger.Error("CacheInvalidation: failed to invalidate tag=%s: %v", tag, err)
			c.metrics.IncCacheInvalidation("error")
			errs = append(errs, fmt.Errorf("tag %s: %w", tag, err))
			continue
		}
		c.metrics.IncCacheInvalidation("success")
	}

	if len(errs) > 0 {
		return tags, fmt.Errorf("%w: %w", ErrInvalidate, errors.Join(errs...))
	}

	c.logger.Info("CacheInvalidation: invalidated %d tags [%s]", len(tags), strings.Join(tags, ", "))
	return tags, nil
}
