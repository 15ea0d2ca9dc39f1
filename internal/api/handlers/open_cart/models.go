package open_cart

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/appointments/models"
	openCart "github.com/m04kA/SMC-BoxScheduler/internal/usecase/open_cart"
)

// OperationDTO одна операция над корзиной
type OperationDTO struct {
	Type      string  `json:"type"` // add_item | remove_item | set_quantity | add_payment | remove_payment
	Kind      string  `json:"kind,omitempty"`
	RefID     int64   `json:"refId,omitempty"`
	UnitPrice *int64  `json:"unitPrice,omitempty"`
	Index     int     `json:"index,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	MethodID  int64   `json:"methodId,omitempty"`
	Amount    int64   `json:"amount,omitempty"`
	Reference *string `json:"reference,omitempty"`
}

// CartRequest HTTP request model
type CartRequest struct {
	Operations []OperationDTO `json:"operations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CartRequest) ToUseCaseRequest(appointmentID int64) *openCart.Request {
	ops := make([]openCart.Operation, 0, len(r.Operations))
	for _, op := range r.Operations {
		converted := openCart.Operation{
			Type:      openCart.OperationType(op.Type),
			Kind:      domain.LineKind(op.Kind),
			RefID:     op.RefID,
			Index:     op.Index,
			Quantity:  op.Quantity,
			MethodID:  op.MethodID,
			Amount:    domain.Money(op.Amount),
			Reference: op.Reference,
		}
		if op.UnitPrice != nil {
			price := domain.Money(*op.UnitPrice)
			converted.UnitPrice = &price
		}
		ops = append(ops, converted)
	}
	return &openCart.Request{AppointmentID: appointmentID, Operations: ops}
}

// CartItemResponse строка корзины
type CartItemResponse struct {
	Kind      string `json:"kind"`
	RefID     int64  `json:"refId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

// CartResponse HTTP response model
type CartResponse struct {
	AppointmentID int64                    `json:"appointmentId"`
	ClientID      *int64                   `json:"clientId,omitempty"`
	Status        string                   `json:"status"`
	Items         []CartItemResponse       `json:"items"`
	Payments      []models.PaymentResponse `json:"payments"`
	CartTotal     int64                    `json:"cartTotal"`
	PaymentsTotal int64                    `json:"paymentsTotal"`
	Balanced      bool                     `json:"balanced"`
}

func fromUseCaseResponse(resp *openCart.Response) *CartResponse {
	items := make([]CartItemResponse, 0, len(resp.Cart.Items))
	for _, item := range resp.Cart.Items {
		items = append(items, CartItemResponse{
			Kind:      string(item.Line.Kind()),
			RefID:     item.Line.RefID(),
			Name:      item.Line.Name(),
			Quantity:  item.Quantity,
			UnitPrice: int64(item.UnitPrice),
			Subtotal:  int64(item.Subtotal()),
		})
	}
	return &CartResponse{
		AppointmentID: resp.Cart.AppointmentID,
		ClientID:      resp.Cart.ClientID,
		Status:        string(resp.Appointment.Status),
		Items:         items,
		Payments:      models.FromDomainPayments(resp.Cart.Payments),
		CartTotal:     int64(resp.CartTotal),
		PaymentsTotal: int64(resp.PaymentsTotal),
		Balanced:      resp.Balanced,
	}
}
