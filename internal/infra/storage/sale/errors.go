package sale

import "errors"

var (
	// ErrSaleNotFound возвращается, когда продажа не найдена
	ErrSaleNotFound = errors.New("sale.repository: sale not found")

	// ErrSaleExists возвращается, когда у записи уже есть продажа
	ErrSaleExists = errors.New("sale.repository: sale already exists for appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sale.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sale.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sale.repository: failed to scan row")
)
