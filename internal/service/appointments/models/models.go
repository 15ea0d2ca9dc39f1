package models

import (
	"time"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"` // "2025-06-10"
	Time            string  `json:"time"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Box             string  `json:"box"`
	ProfessionalID  *int64  `json:"professionalId,omitempty"`
	OfferingID      *int64  `json:"offeringId,omitempty"`
	ClientID        *int64  `json:"clientId,omitempty"`
	Deposit         int64   `json:"deposit"` // в минимальных единицах валюты
	Price           int64   `json:"price"`
	Note            *string `json:"note,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// ListAppointmentsRequest фильтр списка записей (строки из query)
type ListAppointmentsRequest struct {
	From             *string
	To               *string
	Box              *string
	Status           *string
	IncludeCancelled bool
}

// FromDomainAppointment конвертирует domain.Appointment в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		Date:            a.Date.String(),
		Time:            a.Time.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Box:             a.Box,
		ProfessionalID:  a.ProfessionalID,
		OfferingID:      a.OfferingID,
		ClientID:        a.ClientID,
		Deposit:         int64(a.Deposit),
		Price:           int64(a.Price),
		Note:            a.Note,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result, Total: len(result)}
}

// PaymentResponse платеж
type PaymentResponse struct {
	MethodID  int64   `json:"methodId"`
	Amount    int64   `json:"amount"`
	Reference *string `json:"reference,omitempty"`
}

// SaleItemResponse строка продажи
type SaleItemResponse struct {
	Kind      string `json:"kind"`
	RefID     int64  `json:"refId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

// SaleResponse продажа по закрытой записи
type SaleResponse struct {
	ID                int64              `json:"id"`
	ReceiptNumber     string             `json:"receiptNumber"`
	ClientID          *int64             `json:"clientId,omitempty"`
	AppointmentID     int64              `json:"appointmentId"`
	AppointmentStatus string             `json:"appointmentStatus"`
	Items             []SaleItemResponse `json:"items"`
	Payments          []PaymentResponse  `json:"payments"`
	Total             int64              `json:"total"`
	CreatedAt         string             `json:"createdAt"`
}

// FromDomainPayments конвертирует платежи
func FromDomainPayments(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			MethodID:  p.MethodID,
			Amount:    int64(p.Amount),
			Reference: p.Reference,
		})
	}
	return out
}

// FromDomainSale конвертирует domain.Sale в ответ. Продажа существует
// только у завершенной записи
func FromDomainSale(s *domain.Sale) *SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			Kind:      string(item.Kind),
			RefID:     item.RefID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: int64(item.UnitPrice),
			Subtotal:  int64(item.Subtotal),
		})
	}
	return &SaleResponse{
		ID:                s.ID,
		ReceiptNumber:     s.ReceiptNumber,
		ClientID:          s.ClientID,
		AppointmentID:     s.AppointmentID,
		AppointmentStatus: string(domain.StatusCompleted),
		Items:             items,
		Payments:          FromDomainPayments(s.Payments),
		Total:             int64(s.Total),
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
	}
}
