package catalog

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
)

type CatalogService interface {
	CreateOffering(ctx context.Context, req *models.CreateOfferingRequest) (*models.OfferingResponse, error)
	GetOffering(ctx context.Context, id int64) (*models.OfferingResponse, error)
	ListOfferings(ctx context.Context) (*models.OfferingListResponse, error)

	CreateProfessional(ctx context.Context, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error)
	ListProfessionals(ctx context.Context) (*models.ProfessionalListResponse, error)
	DeleteProfessional(ctx context.Context, id int64) error

	CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error)
	ListClients(ctx context.Context) (*models.ClientListResponse, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error)
	ListProducts(ctx context.Context) (*models.ProductListResponse, error)
	ListPaymentMethods(ctx context.Context, activeOnly bool) (*models.PaymentMethodListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
