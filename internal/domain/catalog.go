package domain

// Client represents a customer
type Client struct {
	ID    int64
	Name  string
	Phone *string
	Email *string
}

// Product represents a retail item sold at settlement
type Product struct {
	ID    int64
	Name  string
	Price Money
}

// PaymentMethod represents a way to pay (cash, card, ...)
type PaymentMethod struct {
	ID     int64
	Name   string
	Active bool
}
