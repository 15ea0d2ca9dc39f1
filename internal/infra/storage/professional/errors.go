package professional

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("professional.repository: professional not found")

	// ErrProfessionalInUse возвращается при удалении профессионала, на которого ссылаются записи
	ErrProfessionalInUse = errors.New("professional.repository: professional is referenced by appointments")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("professional.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("professional.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("professional.repository: failed to scan row")
)
