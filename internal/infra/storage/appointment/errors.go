package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrCellOccupied возвращается при нарушении уникального индекса ячейки (date, time, box)
	ErrCellOccupied = errors.New("appointment.repository: cell already occupied")

	// ErrReferenceNotFound возвращается, когда профессионал, услуга или клиент не существуют
	ErrReferenceNotFound = errors.New("appointment.repository: referenced entity not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
