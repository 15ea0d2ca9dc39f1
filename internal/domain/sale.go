package domain

import "time"

// SaleItem is an immutable snapshot of a cart line
type SaleItem struct {
	Kind      LineKind
	RefID     int64
	Name      string
	Quantity  int
	UnitPrice Money
	Subtotal  Money
}

// Sale is the record of a completed settlement. One per completed appointment.
type Sale struct {
	ID            int64
	ReceiptNumber string
	ClientID      *int64
	AppointmentID int64
	Items         []SaleItem
	Payments      []Payment
	Total         Money
	CreatedAt     time.Time
}

// NewSale snapshots a cart into a sale
func NewSale(cart *Cart, receiptNumber string) *Sale {
	items := make([]SaleItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, SaleItem{
			Kind:      item.Line.Kind(),
			RefID:     item.Line.RefID(),
			Name:      item.Line.Name(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}

	payments := make([]Payment, 0, len(cart.Payments))
	for _, p := range cart.Payments {
		p.Reference = cloneString(p.Reference)
		payments = append(payments, p)
	}

	var clientID *int64
	if cart.ClientID != nil {
		id := *cart.ClientID
		clientID = &id
	}

	return &Sale{
		ReceiptNumber: receiptNumber,
		ClientID:      clientID,
		AppointmentID: cart.AppointmentID,
		Items:         items,
		Payments:      payments,
		Total:         cart.CartTotal(),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
