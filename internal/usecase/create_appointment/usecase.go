package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/catalog"
	professionalRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/professional"
	"github.com/m04kA/SMC-BoxScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-BoxScheduler/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo  AppointmentRepository
	offeringRepo     OfferingRepository
	professionalRepo ProfessionalRepository
	clientRepo       ClientRepository
	txManager        TransactionManager
	clock            Clock
	publisher        EventPublisher
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
	publisher EventPublisher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DefaultDurationMinutes <= 0 {
		opts.DefaultDurationMinutes = domain.DefaultDurationMinutes
	}
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		offeringRepo:     offeringRepo,
		professionalRepo: professionalRepo,
		clientRepo:       clientRepo,
		txManager:        txManager,
		clock:            clock,
		publisher:        publisher,
		metrics:          metrics,
		opts:             opts,
		logger:           logger,
	}
}

// Execute создает запись в ячейке (date, time, box)
// Проверка ячейки и вставка выполняются в сериализуемой транзакции,
// последняя защита - частичный уникальный индекс по активным записям
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, box=%q", req.Date, req.Time, req.Box)

	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись в прошлом запрещена
	if uc.clock.IsPast(req.Date, req.Time) {
		uc.logger.Warn("CreateAppointment: %s %s is in the past", req.Date, req.Time)
		return nil, domain.NewValidationError("date", "appointment is in the past")
	}

	cell := domain.Cell{Date: req.Date, Time: req.Time, Box: req.Box}

	var created *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// занятая ячейка важнее недоступной услуги
		if err := uc.checkCellFree(txCtx, cell); err != nil {
			return err
		}

		appointment, err := uc.buildAppointment(txCtx, req, cell)
		if err != nil {
			return err
		}

		if err := uc.checkOverlap(txCtx, appointment); err != nil {
			return err
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrCellOccupied):
				return &domain.ConflictError{Cell: cell}
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				return domain.NewValidationError("reference", "referenced entity no longer exists")
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.handleError(cell, err)
	}

	uc.metrics.AppointmentCreated(created.Box)
	if err := uc.publisher.PublishJSON(ctx, domain.EventAppointmentCreated, events.NewAppointmentEvent(created, time.Now())); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", created.ID, err)
	}

	uc.logger.Info("CreateAppointment: appointment id=%d created at %s", created.ID, cell)
	return created, nil
}

// buildAppointment собирает запись: проверяет ссылки и подставляет значения по умолчанию
func (uc *UseCase) buildAppointment(ctx context.Context, req *Request, cell domain.Cell) (*domain.Appointment, error) {
	appointment := &domain.Appointment{
		Date:            req.Date,
		Time:            req.Time,
		Box:             req.Box,
		DurationMinutes: uc.opts.DefaultDurationMinutes,
		Status:          domain.StatusReserved,
		ProfessionalID:  req.ProfessionalID,
		OfferingID:      req.OfferingID,
		ClientID:        req.ClientID,
		Deposit:         req.Deposit,
		Note:            req.Note,
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}

	if req.OfferingID != nil {
		offering, err := uc.checkOffering(ctx, cell, *req.OfferingID)
		if err != nil {
			return nil, err
		}
		appointment.DurationMinutes = offering.DurationMinutes
		appointment.Price = offering.Price
	}

	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		appointment.Price = *req.Price
	}

	if req.ProfessionalID != nil {
		if _, err := uc.professionalRepo.GetByID(ctx, *req.ProfessionalID); err != nil {
			if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
				return nil, &domain.NotFoundError{Entity: "professional", ID: *req.ProfessionalID}
			}
			uc.logger.Error("CreateAppointment: failed to get professional id=%d: %v", *req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
		}
	}

	if req.ClientID != nil {
		if _, err := uc.clientRepo.GetClientByID(ctx, *req.ClientID); err != nil {
			if errors.Is(err, catalogRepo.ErrClientNotFound) {
				return nil, &domain.NotFoundError{Entity: "client", ID: *req.ClientID}
			}
			uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
		}
	}

	return appointment, nil
}

// checkOffering проверяет, что услуга существует и доступна в ячейке
func (uc *UseCase) checkOffering(ctx context.Context, cell domain.Cell, offeringID int64) (*domain.Offering, error) {
	offerings, err := uc.offeringRepo.List(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list offerings: %v", err)
		return nil, fmt.Errorf("%w: failed to list offerings: %w", ErrInternal, err)
	}

	var offering *domain.Offering
	for _, o := range offerings {
		if o.ID == offeringID {
			offering = o
			break
		}
	}
	if offering == nil {
		return nil, &domain.NotFoundError{Entity: "offering", ID: offeringID}
	}

	if !domain.Resolve(cell, nil, offerings).HasOffering(offeringID) {
		uc.logger.Warn("CreateAppointment: offering id=%d is not available at %s", offeringID, cell)
		return nil, &domain.NotAvailableError{Cell: cell, OfferingID: offeringID}
	}

	return offering, nil
}

// checkCellFree проверяет, что ячейку не держит другая активная запись
func (uc *UseCase) checkCellFree(ctx context.Context, cell domain.Cell) error {
	existing, err := uc.appointmentRepo.GetActiveByCell(ctx, cell, 0)
	if err == nil {
		return &domain.ConflictError{Cell: cell, ExistingID: existing.ID}
	}
	if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Error("CreateAppointment: failed to check cell %s: %v", cell, err)
		return fmt.Errorf("%w: failed to check cell: %w", ErrInternal, err)
	}
	return nil
}

// checkOverlap в строгом режиме проверяет пересечение интервалов в боксе
func (uc *UseCase) checkOverlap(ctx context.Context, a *domain.Appointment) error {
	if !uc.opts.StrictOverlap {
		return nil
	}

	sameDay, err := uc.appointmentRepo.ListActiveByDate(ctx, a.Date, a.Box)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list appointments for %s: %v", a.Date, err)
		return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}
	for _, other := range sameDay {
		if other.ID != a.ID && domain.Overlaps(a.Time, a.DurationMinutes, other.Time, other.DurationMinutes) {
			return &domain.ConflictError{Cell: other.Cell(), ExistingID: other.ID}
		}
	}

	return nil
}

// handleError приводит ошибку транзакции к доменной таксономии
func (uc *UseCase) handleError(cell domain.Cell, err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		err = &domain.ConflictError{Cell: cell}
	}

	if errors.Is(err, domain.ErrConflict) {
		uc.metrics.BookingConflict(cell.Box)
		uc.logger.Warn("CreateAppointment: %v", err)
		return err
	}
	if domain.IsDomainError(err) {
		uc.logger.Warn("CreateAppointment: %v", err)
		return err
	}
	if errors.Is(err, ErrInternal) {
		return err
	}

	uc.logger.Error("CreateAppointment: transaction failed: %v", err)
	return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
}
