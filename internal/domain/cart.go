package domain

import "fmt"

// LineKind tags the variant of a cart line
type LineKind string

const (
	LineProduct     LineKind = "product"
	LineOffering    LineKind = "offering"
	LineSubOffering LineKind = "sub_offering"
)

// IsValid returns true if k is a known line kind
func (k LineKind) IsValid() bool {
	return k == LineProduct || k == LineOffering || k == LineSubOffering
}

// PricedLine is the common face of every cart line variant
type PricedLine interface {
	Kind() LineKind
	RefID() int64
	Name() string
	UnitPrice() Money
}

// ProductLine is a cart line referencing a product
type ProductLine struct {
	ProductID   int64
	ProductName string
	Price       Money
}

func (l ProductLine) Kind() LineKind   { return LineProduct }
func (l ProductLine) RefID() int64     { return l.ProductID }
func (l ProductLine) Name() string     { return l.ProductName }
func (l ProductLine) UnitPrice() Money { return l.Price }

// OfferingLine is a cart line referencing a top-level offering
type OfferingLine struct {
	OfferingID   int64
	OfferingName string
	Price        Money
}

func (l OfferingLine) Kind() LineKind   { return LineOffering }
func (l OfferingLine) RefID() int64     { return l.OfferingID }
func (l OfferingLine) Name() string     { return l.OfferingName }
func (l OfferingLine) UnitPrice() Money { return l.Price }

// SubOfferingLine is a cart line referencing a sub-offering
type SubOfferingLine struct {
	OfferingID   int64
	ParentID     int64
	OfferingName string
	Price        Money
}

func (l SubOfferingLine) Kind() LineKind   { return LineSubOffering }
func (l SubOfferingLine) RefID() int64     { return l.OfferingID }
func (l SubOfferingLine) Name() string     { return l.OfferingName }
func (l SubOfferingLine) UnitPrice() Money { return l.Price }

// LineForOffering picks the line variant matching the offering kind.
// price is the unit price to charge, which may differ from the catalog price.
func LineForOffering(o *Offering, price Money) PricedLine {
	if o.IsSub() && o.ParentID != nil {
		return SubOfferingLine{OfferingID: o.ID, ParentID: *o.ParentID, OfferingName: o.Name, Price: price}
	}
	return OfferingLine{OfferingID: o.ID, OfferingName: o.Name, Price: price}
}

// CartItem is one line of a cart
type CartItem struct {
	Line      PricedLine
	Quantity  int
	UnitPrice Money
}

// Subtotal returns quantity × unit price
func (i CartItem) Subtotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// Payment is one recorded payment
type Payment struct {
	MethodID  int64
	Amount    Money
	Reference *string
}

// Cart is the transient settlement state of one appointment
type Cart struct {
	AppointmentID int64
	ClientID      *int64
	Items         []CartItem
	Payments      []Payment
}

// OpenCart seeds a cart from an appointment. When the appointment has an
// offering, one line is added at the appointment's recorded price.
func OpenCart(a *Appointment, offering *Offering) (*Cart, error) {
	cart := &Cart{
		AppointmentID: a.ID,
		ClientID:      a.ClientID,
		Items:         make([]CartItem, 0, 1),
		Payments:      make([]Payment, 0),
	}
	if offering != nil {
		if err := cart.AddItem(LineForOffering(offering, a.Price)); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// AddItem appends a line with quantity 1
func (c *Cart) AddItem(line PricedLine) error {
	if err := CheckAmount("unitPrice", line.UnitPrice()); err != nil {
		return err
	}
	if c.CartTotal()+line.UnitPrice() > MaxCartTotal {
		return NewValidationError("unitPrice", fmt.Sprintf("cart total would exceed %s", MaxCartTotal))
	}
	c.Items = append(c.Items, CartItem{
		Line:      line,
		Quantity:  1,
		UnitPrice: line.UnitPrice(),
	})
	return nil
}

// RemoveItem removes the line at index
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.Items) {
		return NewValidationError("index", "item index out of range")
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// SetQuantity changes the quantity of the line at index
func (c *Cart) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(c.Items) {
		return NewValidationError("index", "item index out of range")
	}
	if qty < 1 {
		return NewValidationError("quantity", "must be at least 1")
	}
	if qty > MaxQuantity {
		return NewValidationError("quantity", fmt.Sprintf("must not exceed %d", MaxQuantity))
	}
	item := c.Items[index]
	if c.CartTotal()-item.Subtotal()+item.UnitPrice.Mul(qty) > MaxCartTotal {
		return NewValidationError("quantity", fmt.Sprintf("cart total would exceed %s", MaxCartTotal))
	}
	c.Items[index].Quantity = qty
	return nil
}

// AddPayment records a payment. The amount must be positive.
func (c *Cart) AddPayment(p Payment) error {
	if !p.Amount.IsPositive() {
		return NewValidationError("amount", "must be positive")
	}
	if err := CheckAmount("amount", p.Amount); err != nil {
		return err
	}
	if c.PaymentsTotal()+p.Amount > MaxCartTotal {
		return NewValidationError("amount", fmt.Sprintf("payments total would exceed %s", MaxCartTotal))
	}
	c.Payments = append(c.Payments, p)
	return nil
}

// RemovePayment removes the payment at index
func (c *Cart) RemovePayment(index int) error {
	if index < 0 || index >= len(c.Payments) {
		return NewValidationError("index", "payment index out of range")
	}
	c.Payments = append(c.Payments[:index], c.Payments[index+1:]...)
	return nil
}

// CartTotal returns the sum of line subtotals
func (c *Cart) CartTotal() Money {
	var total Money
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// PaymentsTotal returns the sum of payment amounts
func (c *Cart) PaymentsTotal() Money {
	var total Money
	for _, p := range c.Payments {
		total += p.Amount
	}
	return total
}

// CheckBalance returns UnbalancedSettlementError unless the totals are equal
func (c *Cart) CheckBalance() error {
	cartTotal, paymentsTotal := c.CartTotal(), c.PaymentsTotal()
	if cartTotal != paymentsTotal {
		return &UnbalancedSettlementError{CartTotal: cartTotal, PaymentsTotal: paymentsTotal}
	}
	return nil
}
