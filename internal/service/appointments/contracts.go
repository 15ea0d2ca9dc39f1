package appointments

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// SaleRepository интерфейс репозитория продаж
type SaleRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Sale, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics доменные метрики
type Metrics interface {
	AppointmentCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
