package catalog

import "errors"

var (
	// ErrProfessionalInUse возвращается при удалении специалиста, на которого ссылаются записи
	ErrProfessionalInUse = errors.New("catalog: professional is referenced by appointments")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
