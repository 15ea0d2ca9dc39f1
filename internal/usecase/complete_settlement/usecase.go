package complete_settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	saleRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/sale"
	"github.com/m04kA/SMC-BoxScheduler/internal/integrations/events"
)

// UseCase use case закрытия расчета
type UseCase struct {
	cartOpener      CartOpener
	saleRepo        SaleRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartOpener CartOpener,
	saleRepo SaleRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		cartOpener:      cartOpener,
		saleRepo:        saleRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute собирает корзину, проверяет баланс и в одной транзакции
// сохраняет продажу и переводит запись в completed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteSettlement: appointment id=%d, %d operations", req.AppointmentID, len(req.Operations))

	var sale *domain.Sale
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Запись читается FOR UPDATE внутри транзакции
		cart, err := uc.cartOpener.Execute(txCtx, req)
		if err != nil {
			return err
		}

		if !cart.Appointment.CanBeSettled() {
			return domain.NewValidationError("status", fmt.Sprintf("appointment is %s and cannot be settled", cart.Appointment.Status))
		}

		if err := cart.Cart.CheckBalance(); err != nil {
			return err
		}

		sale, err = uc.saleRepo.Create(txCtx, domain.NewSale(cart.Cart, uuid.NewString()))
		if err != nil {
			if errors.Is(err, saleRepo.ErrSaleExists) {
				return domain.NewValidationError("appointmentId", "appointment is already settled")
			}
			uc.logger.Error("CompleteSettlement: failed to create sale for appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to create sale: %w", ErrInternal, err)
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, req.AppointmentID, domain.StatusCompleted); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return &domain.NotFoundError{Entity: "appointment", ID: req.AppointmentID}
			}
			uc.logger.Error("CompleteSettlement: failed to complete appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment status: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.handleError(req.AppointmentID, err)
	}

	uc.metrics.SettlementCompleted(int64(sale.Total))
	if err := uc.publisher.PublishJSON(ctx, domain.EventSaleCompleted, events.NewSaleCompletedEvent(sale, time.Now())); err != nil {
		uc.logger.Warn("CompleteSettlement: failed to publish event for sale id=%d: %v", sale.ID, err)
	}

	uc.logger.Info("CompleteSettlement: appointment id=%d completed, sale id=%d, receipt=%s, total=%s",
		req.AppointmentID, sale.ID, sale.ReceiptNumber, sale.Total)

	return &Response{
		Sale:          sale,
		AppointmentID: req.AppointmentID,
		Status:        domain.StatusCompleted,
	}, nil
}

func (uc *UseCase) handleError(appointmentID int64, err error) error {
	if errors.Is(err, domain.ErrUnbalancedSettlement) {
		uc.metrics.SettlementUnbalanced()
	}
	if domain.IsDomainError(err) {
		uc.logger.Warn("CompleteSettlement: appointment id=%d: %v", appointmentID, err)
		return err
	}
	if errors.Is(err, ErrInternal) {
		return err
	}

	uc.logger.Error("CompleteSettlement: transaction failed for appointment id=%d: %v", appointmentID, err)
	return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
}
