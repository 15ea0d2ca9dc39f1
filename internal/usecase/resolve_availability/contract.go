package resolve_availability

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	List(ctx context.Context) ([]*domain.Professional, error)
}

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	List(ctx context.Context) ([]*domain.Offering, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveByDate(ctx context.Context, date types.Date, box string) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
