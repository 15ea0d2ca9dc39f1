package update_appointment

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetActiveByCell(ctx context.Context, cell domain.Cell, excludeID int64) (*domain.Appointment, error)
	ListActiveByDate(ctx context.Context, date types.Date, box string) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	List(ctx context.Context) ([]*domain.Offering, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock гражданские дата и время с фиксированным смещением
type Clock interface {
	IsPast(d types.Date, t types.TimeString) bool
}

// Metrics доменные метрики
type Metrics interface {
	BookingConflict(box string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
