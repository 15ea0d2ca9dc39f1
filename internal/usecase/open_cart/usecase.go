package open_cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/catalog"
	offeringRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/offering"
)

// UseCase use case открытия корзины расчета
type UseCase struct {
	appointmentRepo AppointmentRepository
	offeringRepo    OfferingRepository
	catalogRepo     CatalogRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	offeringRepo OfferingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		offeringRepo:    offeringRepo,
		catalogRepo:     catalogRepo,
		logger:          logger,
	}
}

// Execute открывает корзину записи и применяет операции
// Корзина не сохраняется: это черновик расчета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("OpenCart: appointment id=%d not found", req.AppointmentID)
			return nil, &domain.NotFoundError{Entity: "appointment", ID: req.AppointmentID}
		}
		uc.logger.Error("OpenCart: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	var offering *domain.Offering
	if appointment.OfferingID != nil {
		offering, err = uc.getOffering(ctx, *appointment.OfferingID)
		if err != nil {
			return nil, err
		}
	}

	cart, err := domain.OpenCart(appointment, offering)
	if err != nil {
		uc.logger.Warn("OpenCart: appointment id=%d cannot seed cart: %v", req.AppointmentID, err)
		return nil, err
	}

	for i, op := range req.Operations {
		if err := uc.apply(ctx, cart, op); err != nil {
			uc.logger.Warn("OpenCart: appointment id=%d, operation #%d (%s) failed: %v", req.AppointmentID, i, op.Type, err)
			return nil, atOperation(i, err)
		}
	}

	cartTotal, paymentsTotal := cart.CartTotal(), cart.PaymentsTotal()
	return &Response{
		Appointment:   appointment,
		Cart:          cart,
		CartTotal:     cartTotal,
		PaymentsTotal: paymentsTotal,
		Balanced:      cartTotal == paymentsTotal,
	}, nil
}

func (uc *UseCase) apply(ctx context.Context, cart *domain.Cart, op Operation) error {
	switch op.Type {
	case OpAddItem:
		line, err := uc.resolveLine(ctx, op)
		if err != nil {
			return err
		}
		return cart.AddItem(line)
	case OpRemoveItem:
		return cart.RemoveItem(op.Index)
	case OpSetQuantity:
		return cart.SetQuantity(op.Index, op.Quantity)
	case OpAddPayment:
		if err := uc.checkPaymentMethod(ctx, op.MethodID); err != nil {
			return err
		}
		return cart.AddPayment(domain.Payment{MethodID: op.MethodID, Amount: op.Amount, Reference: op.Reference})
	case OpRemovePayment:
		return cart.RemovePayment(op.Index)
	default:
		return domain.NewValidationError("type", "unknown operation")
	}
}

// resolveLine находит позицию в каталоге по виду и id
func (uc *UseCase) resolveLine(ctx context.Context, op Operation) (domain.PricedLine, error) {
	if op.UnitPrice != nil {
		if err := domain.CheckAmount("unitPrice", *op.UnitPrice); err != nil {
			return nil, err
		}
	}

	switch op.Kind {
	case domain.LineProduct:
		product, err := uc.catalogRepo.GetProductByID(ctx, op.RefID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProductNotFound) {
				return nil, &domain.NotFoundError{Entity: "product", ID: op.RefID}
			}
			return nil, fmt.Errorf("%w: failed to get product: %w", ErrInternal, err)
		}
		price := product.Price
		if op.UnitPrice != nil {
			price = *op.UnitPrice
		}
		return domain.ProductLine{ProductID: product.ID, ProductName: product.Name, Price: price}, nil

	case domain.LineOffering, domain.LineSubOffering:
		offering, err := uc.getOffering(ctx, op.RefID)
		if err != nil {
			return nil, err
		}
		if offering.IsSub() != (op.Kind == domain.LineSubOffering) {
			return nil, domain.NewValidationError("kind", "does not match the offering kind")
		}
		price := offering.Price
		if op.UnitPrice != nil {
			price = *op.UnitPrice
		}
		return domain.LineForOffering(offering, price), nil

	default:
		return nil, domain.NewValidationError("kind", "unknown line kind")
	}
}

func (uc *UseCase) getOffering(ctx context.Context, id int64) (*domain.Offering, error) {
	offering, err := uc.offeringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
			return nil, &domain.NotFoundError{Entity: "offering", ID: id}
		}
		uc.logger.Error("OpenCart: failed to get offering id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get offering: %w", ErrInternal, err)
	}
	return offering, nil
}

// checkPaymentMethod проверяет, что способ оплаты существует и активен
func (uc *UseCase) checkPaymentMethod(ctx context.Context, id int64) error {
	method, err := uc.catalogRepo.GetPaymentMethodByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPaymentMethodNotFound) {
			return &domain.NotFoundError{Entity: "payment method", ID: id}
		}
		return fmt.Errorf("%w: failed to get payment method: %w", ErrInternal, err)
	}
	if !method.Active {
		return domain.NewValidationError("methodId", "payment method is inactive")
	}
	return nil
}

// atOperation привязывает ошибку валидации к номеру операции
func atOperation(i int, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return domain.NewValidationError(fmt.Sprintf("operations[%d].%s", i, verr.Field), verr.Reason)
	}
	return err
}
