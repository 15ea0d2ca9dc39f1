package events

import (
	"time"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// AppointmentEvent событие жизненного цикла записи
type AppointmentEvent struct {
	AppointmentID int64     `json:"appointmentId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Box           string    `json:"box"`
	Status        string    `json:"status"`
	ClientID      *int64    `json:"clientId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// SaleCompletedEvent событие закрытия расчета
type SaleCompletedEvent struct {
	SaleID        int64     `json:"saleId"`
	ReceiptNumber string    `json:"receiptNumber"`
	AppointmentID int64     `json:"appointmentId"`
	ClientID      *int64    `json:"clientId,omitempty"`
	Total         int64     `json:"total"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewAppointmentEvent собирает событие по записи
func NewAppointmentEvent(a *domain.Appointment, at time.Time) AppointmentEvent {
	return AppointmentEvent{
		AppointmentID: a.ID,
		Date:          a.Date.String(),
		Time:          a.Time.String(),
		Box:           a.Box,
		Status:        string(a.Status),
		ClientID:      a.ClientID,
		OccurredAt:    at.UTC(),
	}
}

// NewSaleCompletedEvent собирает событие по продаже
func NewSaleCompletedEvent(s *domain.Sale, at time.Time) SaleCompletedEvent {
	return SaleCompletedEvent{
		SaleID:        s.ID,
		ReceiptNumber: s.ReceiptNumber,
		AppointmentID: s.AppointmentID,
		ClientID:      s.ClientID,
		Total:         int64(s.Total),
		OccurredAt:    at.UTC(),
	}
}
