// Package pgerr распознает коды ошибок PostgreSQL из lib/pq
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation проверяет нарушение уникального индекса.
// Если constraint не пустой, проверяется и имя индекса.
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation проверяет нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return is(err, codeForeignKeyViolation, "")
}

func is(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
