package open_cart

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// OperationType тип операции над корзиной
type OperationType string

const (
	OpAddItem       OperationType = "add_item"
	OpRemoveItem    OperationType = "remove_item"
	OpSetQuantity   OperationType = "set_quantity"
	OpAddPayment    OperationType = "add_payment"
	OpRemovePayment OperationType = "remove_payment"
)

// Operation одна операция над корзиной. Набор значимых полей зависит от Type:
//   - add_item: Kind, RefID, UnitPrice (опционально, иначе цена из каталога)
//   - remove_item: Index
//   - set_quantity: Index, Quantity
//   - add_payment: MethodID, Amount, Reference
//   - remove_payment: Index
type Operation struct {
	Type      OperationType
	Kind      domain.LineKind
	RefID     int64
	UnitPrice *domain.Money
	Index     int
	Quantity  int
	MethodID  int64
	Amount    domain.Money
	Reference *string
}

// Request открыть корзину записи и применить к ней операции по порядку
type Request struct {
	AppointmentID int64
	Operations    []Operation
}

// Response состояние корзины после операций
type Response struct {
	Appointment   *domain.Appointment
	Cart          *domain.Cart
	CartTotal     domain.Money
	PaymentsTotal domain.Money
	Balanced      bool
}
