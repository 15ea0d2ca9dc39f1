package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	saleRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/sale"
	"github.com/m04kA/SMC-BoxScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// Service сервис для чтения, отмены и удаления записей
type Service struct {
	appointmentRepo AppointmentRepository
	saleRepo        SaleRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	saleRepo SaleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		saleRepo:        saleRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// List получает записи по фильтру
func (s *Service) List(ctx context.Context, req models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := parseFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись. Завершенную или уже отмененную запись отменить нельзя
// Отмена освобождает ячейку для новой записи
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d", id)

	var appointment *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		appointment, err = s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !appointment.CanBeCancelled() {
			return domain.NewValidationError("status", fmt.Sprintf("appointment is %s and cannot be cancelled", appointment.Status))
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return &domain.NotFoundError{Entity: "appointment", ID: id}
			}
			s.logger.Error("Cancel: failed to update status of appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}
		appointment.Status = domain.StatusCancelled
		return nil
	})
	if err != nil {
		return nil, s.handleError("Cancel", id, err)
	}

	s.metrics.AppointmentCancelled()
	s.publish(ctx, domain.EventAppointmentCancelled, appointment)

	s.logger.Info("Cancel: appointment id=%d cancelled, cell %s is free", id, appointment.Cell())
	return models.FromDomainAppointment(appointment), nil
}

// Delete физически удаляет запись
// Завершенная запись связана с продажей и не удаляется
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: appointment id=%d", id)

	var appointment *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		appointment, err = s.getAppointment(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if appointment.Status == domain.StatusCompleted {
			return domain.NewValidationError("status", "completed appointment has a sale and cannot be deleted")
		}

		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return &domain.NotFoundError{Entity: "appointment", ID: id}
			}
			s.logger.Error("Delete: failed to delete appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return s.handleError("Delete", id, err)
	}

	s.publish(ctx, domain.EventAppointmentDeleted, appointment)

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

// GetSale получает продажу, созданную при расчете записи
func (s *Service) GetSale(ctx context.Context, appointmentID int64) (*models.SaleResponse, error) {
	sale, err := s.saleRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, saleRepo.ErrSaleNotFound) {
			s.logger.Warn("GetSale: no sale for appointment id=%d", appointmentID)
			return nil, &domain.NotFoundError{Entity: "sale", ID: appointmentID}
		}
		s.logger.Error("GetSale: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetSale - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainSale(sale), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, &domain.NotFoundError{Entity: "appointment", ID: id}
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) publish(ctx context.Context, key string, a *domain.Appointment) {
	if err := s.publisher.PublishJSON(ctx, key, events.NewAppointmentEvent(a, time.Now())); err != nil {
		s.logger.Warn("publish %s for appointment id=%d failed: %v", key, a.ID, err)
	}
}

func (s *Service) handleError(op string, id int64, err error) error {
	if domain.IsDomainError(err) {
		s.logger.Warn("%s: appointment id=%d: %v", op, id, err)
		return err
	}
	if errors.Is(err, ErrInternal) {
		return err
	}
	s.logger.Error("%s: transaction failed for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - transaction failed: %w", ErrInternal, op, err)
}

// parseFilter переводит строковые параметры запроса в фильтр
func parseFilter(req models.ListAppointmentsRequest) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Box:              req.Box,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.From != nil {
		d, err := types.ParseDate(*req.From)
		if err != nil {
			return filter, domain.NewValidationError("from", "invalid date, expected YYYY-MM-DD")
		}
		filter.From = &d
	}
	if req.To != nil {
		d, err := types.ParseDate(*req.To)
		if err != nil {
			return filter, domain.NewValidationError("to", "invalid date, expected YYYY-MM-DD")
		}
		filter.To = &d
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, domain.NewValidationError("from", "must not be after to")
	}

	if req.Status != nil {
		status := domain.AppointmentStatus(*req.Status)
		if !status.IsValid() {
			return filter, domain.NewValidationError("status", "unknown status")
		}
		filter.Status = &status
	}

	return filter, nil
}
