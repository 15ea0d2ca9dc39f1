package catalog

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("catalog.repository: client not found")

	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("catalog.repository: product not found")

	// ErrPaymentMethodNotFound возвращается, когда способ оплаты не найден
	ErrPaymentMethodNotFound = errors.New("catalog.repository: payment method not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
