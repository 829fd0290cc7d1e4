package cacheinvalidation

import "errors"

var (
	// ErrInvalidate возвращается, если хотя бы один тег не удалось сбросить
	ErrInvalidate = errors.New("cacheinvalidation: failed to invalidate tags")
)
