package complete_settlement

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_settlement: internal error")
)
