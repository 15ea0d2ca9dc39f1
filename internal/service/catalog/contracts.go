package catalog

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// OfferingRepository интерфейс репозитория услуг
type OfferingRepository interface {
	Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error)
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	List(ctx context.Context) ([]*domain.Offering, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	Create(ctx context.Context, p *domain.Professional) (*domain.Professional, error)
	List(ctx context.Context) ([]*domain.Professional, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogRepository клиенты, товары и способы оплаты
type CatalogRepository interface {
	CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]*domain.PaymentMethod, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
