package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	professionalRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/professional"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
)

// CreateProfessional создает специалиста
// Без окна доступности специалист никогда не попадает в выдачу
func (s *Service) CreateProfessional(ctx context.Context, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error) {
	professional := &domain.Professional{Name: req.Name, Specialty: req.Specialty}

	if req.Availability != nil {
		window, err := parseWindow(*req.Availability)
		if err != nil {
			return nil, domain.NewValidationError("availability", err.Error())
		}
		professional.Availability = window
	}

	if err := professional.Validate(); err != nil {
		s.logger.Warn("CreateProfessional: validation failed: %v", err)
		return nil, err
	}

	created, err := s.professionalRepo.Create(ctx, professional)
	if err != nil {
		s.logger.Error("CreateProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProfessional - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateProfessional: professional id=%d created", created.ID)
	return models.FromDomainProfessional(created), nil
}

// ListProfessionals получает всех специалистов
func (s *Service) ListProfessionals(ctx context.Context) (*models.ProfessionalListResponse, error) {
	professionals, err := s.professionalRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %w", ErrInternal, err)
	}

	resp := &models.ProfessionalListResponse{Professionals: make([]*models.ProfessionalResponse, 0, len(professionals))}
	for _, p := range professionals {
		resp.Professionals = append(resp.Professionals, models.FromDomainProfessional(p))
	}
	return resp, nil
}

// DeleteProfessional удаляет специалиста, если на него не ссылаются записи
func (s *Service) DeleteProfessional(ctx context.Context, id int64) error {
	err := s.professionalRepo.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("DeleteProfessional: professional id=%d deleted", id)
		return nil
	case errors.Is(err, professionalRepo.ErrProfessionalNotFound):
		s.logger.Warn("DeleteProfessional: professional id=%d not found", id)
		return &domain.NotFoundError{Entity: "professional", ID: id}
	case errors.Is(err, professionalRepo.ErrProfessionalInUse):
		s.logger.Warn("DeleteProfessional: professional id=%d is referenced by appointments", id)
		return ErrProfessionalInUse
	default:
		s.logger.Error("DeleteProfessional: repository error for professional id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteProfessional - repository error: %w", ErrInternal, err)
	}
}
