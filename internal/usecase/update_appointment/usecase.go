package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/catalog"
	professionalRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/professional"
	"github.com/m04kA/SMC-BoxScheduler/pkg/txmanager"
)

// UseCase use case для изменения записи
type UseCase struct {
	appointmentRepo  AppointmentRepository
	offeringRepo     OfferingRepository
	professionalRepo ProfessionalRepository
	clientRepo       ClientRepository
	txManager        TransactionManager
	clock            Clock
	metrics          Metrics
	opts             Options
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	offeringRepo OfferingRepository,
	professionalRepo ProfessionalRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	clock Clock,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		offeringRepo:     offeringRepo,
		professionalRepo: professionalRepo,
		clientRepo:       clientRepo,
		txManager:        txManager,
		clock:            clock,
		metrics:          metrics,
		opts:             opts,
		logger:           logger,
	}
}

// Execute применяет патч к записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("UpdateAppointment: id=%d", req.ID)

	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed for id=%d: %v", req.ID, err)
		return nil, err
	}

	var (
		result *domain.Appointment
		cell   domain.Cell
	)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return &domain.NotFoundError{Entity: "appointment", ID: req.ID}
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		updated := applyPatch(current, req)
		cell = updated.Cell()

		if err := uc.validateStatusChange(current.Status, updated.Status); err != nil {
			return err
		}

		cellChanged := updated.Cell() != current.Cell()

		// 1. Перенос в прошлое запрещен
		if cellChanged && uc.clock.IsPast(updated.Date, updated.Time) {
			return domain.NewValidationError("date", "appointment is in the past")
		}

		// 2. Ячейку проверяем, если запись переезжает, оживает после отмены или меняет длительность
		if updated.IsActive() && (cellChanged || !current.IsActive() || updated.DurationMinutes != current.DurationMinutes) {
			if err := uc.checkCellFree(txCtx, updated); err != nil {
				return err
			}
		}

		// 3. Услуга должна быть доступна в новой ячейке
		offeringChanged := !sameID(current.OfferingID, updated.OfferingID)
		if updated.OfferingID != nil && (offeringChanged || cellChanged) {
			if err := uc.checkOffering(txCtx, updated.Cell(), *updated.OfferingID); err != nil {
				return err
			}
		}

		if err := uc.checkReferences(txCtx, current, updated); err != nil {
			return err
		}

		result, err = uc.appointmentRepo.Update(txCtx, updated)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrCellOccupied):
				return &domain.ConflictError{Cell: updated.Cell()}
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return &domain.NotFoundError{Entity: "appointment", ID: req.ID}
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				return domain.NewValidationError("reference", "referenced entity no longer exists")
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.handleError(req.ID, cell, err)
	}

	uc.logger.Info("UpdateAppointment: appointment id=%d updated, status=%s, cell=%s", result.ID, result.Status, result.Cell())
	return result, nil
}

// applyPatch возвращает копию записи с примененным патчем
func applyPatch(current *domain.Appointment, req *Request) *domain.Appointment {
	updated := *current

	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Time != nil {
		updated.Time = *req.Time
	}
	if req.Box != nil {
		updated.Box = *req.Box
	}
	if req.DurationMinutes != nil {
		updated.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.ProfessionalID != nil {
		updated.ProfessionalID = clearable(*req.ProfessionalID)
	}
	if req.OfferingID != nil {
		updated.OfferingID = clearable(*req.OfferingID)
	}
	if req.ClientID != nil {
		updated.ClientID = clearable(*req.ClientID)
	}
	if req.Deposit != nil {
		updated.Deposit = *req.Deposit
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.Note != nil {
		if *req.Note == "" {
			updated.Note = nil
		} else {
			note := *req.Note
			updated.Note = &note
		}
	}

	return &updated
}

func clearable(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// checkCellFree проверяет, что ячейку не держит другая активная запись
func (uc *UseCase) checkCellFree(ctx context.Context, a *domain.Appointment) error {
	existing, err := uc.appointmentRepo.GetActiveByCell(ctx, a.Cell(), a.ID)
	if err == nil {
		return &domain.ConflictError{Cell: a.Cell(), ExistingID: existing.ID}
	}
	if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Error("UpdateAppointment: failed to check cell %s: %v", a.Cell(), err)
		return fmt.Errorf("%w: failed to check cell: %w", ErrInternal, err)
	}

	if !uc.opts.StrictOverlap {
		return nil
	}

	sameDay, err := uc.appointmentRepo.ListActiveByDate(ctx, a.Date, a.Box)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to list appointments for %s: %v", a.Date, err)
		return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}
	for _, other := range sameDay {
		if other.ID != a.ID && domain.Overlaps(a.Time, a.DurationMinutes, other.Time, other.DurationMinutes) {
			return &domain.ConflictError{Cell: other.Cell(), ExistingID: other.ID}
		}
	}
	return nil
}

// checkOffering проверяет, что услуга существует и доступна в ячейке
func (uc *UseCase) checkOffering(ctx context.Context, cell domain.Cell, offeringID int64) error {
	offerings, err := uc.offeringRepo.List(ctx)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to list offerings: %v", err)
		return fmt.Errorf("%w: failed to list offerings: %w", ErrInternal, err)
	}

	found := false
	for _, o := range offerings {
		if o.ID == offeringID {
			found = true
			break
		}
	}
	if !found {
		return &domain.NotFoundError{Entity: "offering", ID: offeringID}
	}

	if !domain.Resolve(cell, nil, offerings).HasOffering(offeringID) {
		return &domain.NotAvailableError{Cell: cell, OfferingID: offeringID}
	}
	return nil
}

// checkReferences проверяет существование новых специалиста и клиента
func (uc *UseCase) checkReferences(ctx context.Context, current, updated *domain.Appointment) error {
	if updated.ProfessionalID != nil && !sameID(current.ProfessionalID, updated.ProfessionalID) {
		if _, err := uc.professionalRepo.GetByID(ctx, *updated.ProfessionalID); err != nil {
			if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
				return &domain.NotFoundError{Entity: "professional", ID: *updated.ProfessionalID}
			}
			return fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
		}
	}

	if updated.ClientID != nil && !sameID(current.ClientID, updated.ClientID) {
		if _, err := uc.clientRepo.GetClientByID(ctx, *updated.ClientID); err != nil {
			if errors.Is(err, catalogRepo.ErrClientNotFound) {
				return &domain.NotFoundError{Entity: "client", ID: *updated.ClientID}
			}
			return fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
		}
	}

	return nil
}

// handleError приводит ошибку транзакции к доменной таксономии
func (uc *UseCase) handleError(id int64, cell domain.Cell, err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		err = &domain.ConflictError{Cell: cell}
	}

	if errors.Is(err, domain.ErrConflict) {
		uc.metrics.BookingConflict(cell.Box)
	}
	if domain.IsDomainError(err) {
		uc.logger.Warn("UpdateAppointment: id=%d: %v", id, err)
		return err
	}
	if errors.Is(err, ErrInternal) {
		return err
	}

	uc.logger.Error("UpdateAppointment: transaction failed for id=%d: %v", id, err)
	return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
}
