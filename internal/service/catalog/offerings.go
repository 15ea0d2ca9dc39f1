package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	offeringRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/offering"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// CreateOffering создает услугу
// Родитель подуслуги должен существовать и быть услугой верхнего уровня
func (s *Service) CreateOffering(ctx context.Context, req *models.CreateOfferingRequest) (*models.OfferingResponse, error) {
	s.logger.Info("CreateOffering: name=%q, kind=%s", req.Name, req.Kind)

	offering, err := s.offeringFromRequest(req)
	if err != nil {
		s.logger.Warn("CreateOffering: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Offering
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if offering.IsSub() {
			parent, err := s.offeringRepo.GetByID(txCtx, *offering.ParentID)
			if err != nil {
				if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
					return &domain.NotFoundError{Entity: "offering", ID: *offering.ParentID}
				}
				return fmt.Errorf("%w: CreateOffering - get parent: %w", ErrInternal, err)
			}
			if parent.IsSub() {
				return domain.NewValidationError("parentId", "parent must be a top-level offering")
			}
		}

		created, err = s.offeringRepo.Create(txCtx, offering)
		if err != nil {
			return fmt.Errorf("%w: CreateOffering - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if domain.IsDomainError(err) {
			s.logger.Warn("CreateOffering: %v", err)
			return nil, err
		}
		s.logger.Error("CreateOffering: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: CreateOffering - transaction failed: %w", ErrInternal, err)
	}

	s.logger.Info("CreateOffering: offering id=%d created", created.ID)
	return models.FromDomainOffering(created), nil
}

// GetOffering получает услугу по ID
func (s *Service) GetOffering(ctx context.Context, id int64) (*models.OfferingResponse, error) {
	offering, err := s.offeringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
			s.logger.Warn("GetOffering: offering id=%d not found", id)
			return nil, &domain.NotFoundError{Entity: "offering", ID: id}
		}
		s.logger.Error("GetOffering: repository error for offering id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetOffering - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainOffering(offering), nil
}

// ListOfferings получает все услуги
func (s *Service) ListOfferings(ctx context.Context) (*models.OfferingListResponse, error) {
	offerings, err := s.offeringRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListOfferings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOfferings - repository error: %w", ErrInternal, err)
	}

	resp := &models.OfferingListResponse{Offerings: make([]*models.OfferingResponse, 0, len(offerings))}
	for _, o := range offerings {
		resp.Offerings = append(resp.Offerings, models.FromDomainOffering(o))
	}
	return resp, nil
}

func (s *Service) offeringFromRequest(req *models.CreateOfferingRequest) (*domain.Offering, error) {
	offering := &domain.Offering{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           domain.Money(req.Price),
		Kind:            domain.OfferingKind(req.Kind),
		ParentID:        req.ParentID,
		AlwaysAvailable: req.AlwaysAvailable,
		Windows:         make([]domain.AvailabilityWindow, 0, len(req.Windows)),
	}

	for i, w := range req.Windows {
		window, err := parseWindow(w)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("windows[%d]", i), err.Error())
		}
		if !s.hasBox(w.Box) {
			return nil, domain.NewValidationError(fmt.Sprintf("windows[%d].box", i), "unknown box")
		}
		offering.Windows = append(offering.Windows, domain.AvailabilityWindow{
			StartDate: window.StartDate,
			EndDate:   window.EndDate,
			StartTime: window.StartTime,
			EndTime:   window.EndTime,
			Box:       w.Box,
		})
	}

	if err := offering.Validate(); err != nil {
		return nil, err
	}
	return offering, nil
}

// parseWindow разбирает границы окна
func parseWindow(w models.WindowDTO) (*domain.ProfessionalWindow, error) {
	startDate, err := types.ParseDate(w.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	endDate, err := types.ParseDate(w.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}
	startTime, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}
	endTime, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}
	return &domain.ProfessionalWindow{
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
