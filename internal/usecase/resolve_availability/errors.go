package resolve_availability

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_availability: internal error")
)
