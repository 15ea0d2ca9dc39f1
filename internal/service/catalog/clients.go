package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
)

// CreateClient создает клиента
func (s *Service) CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	if len(req.Name) > domain.MaxNameLength {
		return nil, domain.NewValidationError("name", "is too long")
	}

	created, err := s.catalogRepo.CreateClient(ctx, &domain.Client{Name: req.Name, Phone: req.Phone, Email: req.Email})
	if err != nil {
		s.logger.Error("CreateClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateClient - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateClient: client id=%d created", created.ID)
	return models.FromDomainClient(created), nil
}

// ListClients получает всех клиентов
func (s *Service) ListClients(ctx context.Context) (*models.ClientListResponse, error) {
	clients, err := s.catalogRepo.ListClients(ctx)
	if err != nil {
		s.logger.Error("ListClients: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClients - repository error: %w", ErrInternal, err)
	}

	resp := &models.ClientListResponse{Clients: make([]*models.ClientResponse, 0, len(clients))}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, models.FromDomainClient(c))
	}
	return resp, nil
}

// CreateProduct создает товар
func (s *Service) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	if err := domain.CheckAmount("price", domain.Money(req.Price)); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.CreateProduct(ctx, &domain.Product{Name: req.Name, Price: domain.Money(req.Price)})
	if err != nil {
		s.logger.Error("CreateProduct: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProduct - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateProduct: product id=%d created", created.ID)
	return models.FromDomainProduct(created), nil
}

// ListProducts получает все товары
func (s *Service) ListProducts(ctx context.Context) (*models.ProductListResponse, error) {
	products, err := s.catalogRepo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("ListProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %w", ErrInternal, err)
	}

	resp := &models.ProductListResponse{Products: make([]*models.ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, models.FromDomainProduct(p))
	}
	return resp, nil
}

// ListPaymentMethods получает способы оплаты
func (s *Service) ListPaymentMethods(ctx context.Context, activeOnly bool) (*models.PaymentMethodListResponse, error) {
	methods, err := s.catalogRepo.ListPaymentMethods(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListPaymentMethods: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPaymentMethods - repository error: %w", ErrInternal, err)
	}

	resp := &models.PaymentMethodListResponse{PaymentMethods: make([]*models.PaymentMethodResponse, 0, len(methods))}
	for _, m := range methods {
		resp.PaymentMethods = append(resp.PaymentMethods, models.FromDomainPaymentMethod(m))
	}
	return resp, nil
}
