package tagcache

import "errors"

var (
	// ErrRead возвращается при ошибке чтения из Redis
	ErrRead = errors.New("tagcache: failed to read")

	// ErrWrite возвращается при ошибке записи в Redis
	ErrWrite = errors.New("tagcache: failed to write")

	// ErrInvalidate возвращается при ошибке инвалидации тега
	ErrInvalidate = errors.New("tagcache: failed to invalidate tag")
)
