package create_appointment

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// Options настройки бронирования из конфигурации
type Options struct {
	Boxes                  []string
	DefaultDurationMinutes int
	StrictOverlap          bool // проверять пересечение интервалов, а не только совпадение ячейки
}

// Request модель запроса на создание записи
type Request struct {
	Date            types.Date
	Time            types.TimeString
	Box             string
	DurationMinutes *int                      // по умолчанию - длительность услуги или значение из конфига
	Status          *domain.AppointmentStatus // по умолчанию - reserved
	ProfessionalID  *int64
	OfferingID      *int64
	ClientID        *int64
	Deposit         domain.Money
	Price           *domain.Money // по умолчанию - цена услуги
	Note            *string
}
