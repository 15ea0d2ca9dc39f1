package open_cart

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
}

// CatalogRepository товары и способы оплаты
type CatalogRepository interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetPaymentMethodByID(ctx context.Context, id int64) (*domain.PaymentMethod, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
