package complete_settlement

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/internal/usecase/open_cart"
)

// CartOpener собирает корзину записи с примененными операциями
type CartOpener interface {
	Execute(ctx context.Context, req *open_cart.Request) (*open_cart.Response, error)
}

// SaleRepository интерфейс репозитория продаж
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
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
	SettlementCompleted(totalMinorUnits int64)
	SettlementUnbalanced()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
