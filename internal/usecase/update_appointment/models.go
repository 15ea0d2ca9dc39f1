package update_appointment

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// Options настройки бронирования из конфигурации
type Options struct {
	Boxes              []string
	StrictOverlap      bool
	EnforceTransitions bool // разрешать только переходы IsValidTransition
}

// Request частичное обновление записи: nil - поле не меняется
// Для ссылок 0 снимает привязку, для заметки пустая строка ее удаляет
type Request struct {
	ID              int64
	Date            *types.Date
	Time            *types.TimeString
	Box             *string
	DurationMinutes *int
	Status          *domain.AppointmentStatus
	ProfessionalID  *int64
	OfferingID      *int64
	ClientID        *int64
	Deposit         *domain.Money
	Price           *domain.Money
	Note            *string
}
