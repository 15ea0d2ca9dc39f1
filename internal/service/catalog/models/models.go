package models

import "github.com/m04kA/SMC-BoxScheduler/internal/domain"

// WindowDTO окно доступности. Для специалиста поле Box не используется
type WindowDTO struct {
	StartDate string `json:"startDate"` // "2025-06-01"
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`
	Box       string `json:"box,omitempty"`
}

// CreateOfferingRequest запрос на создание услуги
type CreateOfferingRequest struct {
	Name            string      `json:"name"`
	DurationMinutes int         `json:"durationMinutes"`
	Price           int64       `json:"price"`
	Kind            string      `json:"kind"` // top_level | sub
	ParentID        *int64      `json:"parentId,omitempty"`
	AlwaysAvailable bool        `json:"alwaysAvailable"`
	Windows         []WindowDTO `json:"windows,omitempty"`
}

// OfferingResponse услуга
type OfferingResponse struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	DurationMinutes int         `json:"durationMinutes"`
	Price           int64       `json:"price"`
	Kind            string      `json:"kind"`
	ParentID        *int64      `json:"parentId,omitempty"`
	AlwaysAvailable bool        `json:"alwaysAvailable"`
	Windows         []WindowDTO `json:"windows"`
}

// OfferingListResponse список услуг
type OfferingListResponse struct {
	Offerings []*OfferingResponse `json:"offerings"`
}

// CreateProfessionalRequest запрос на создание специалиста
type CreateProfessionalRequest struct {
	Name         string     `json:"name"`
	Specialty    string     `json:"specialty"`
	Availability *WindowDTO `json:"availability,omitempty"`
}

// ProfessionalResponse специалист
type ProfessionalResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Specialty    string     `json:"specialty"`
	Availability *WindowDTO `json:"availability,omitempty"`
}

// ProfessionalListResponse список специалистов
type ProfessionalListResponse struct {
	Professionals []*ProfessionalResponse `json:"professionals"`
}

// CreateClientRequest запрос на создание клиента
type CreateClientRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ClientResponse клиент
type ClientResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ClientListResponse список клиентов
type ClientListResponse struct {
	Clients []*ClientResponse `json:"clients"`
}

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ProductResponse товар
type ProductResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ProductListResponse список товаров
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
}

// PaymentMethodResponse способ оплаты
type PaymentMethodResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// PaymentMethodListResponse список способов оплаты
type PaymentMethodListResponse struct {
	PaymentMethods []*PaymentMethodResponse `json:"paymentMethods"`
}

// FromDomainOffering конвертирует domain.Offering в ответ
func FromDomainOffering(o *domain.Offering) *OfferingResponse {
	windows := make([]WindowDTO, 0, len(o.Windows))
	for _, w := range o.Windows {
		windows = append(windows, WindowDTO{
			StartDate: w.StartDate.String(),
			EndDate:   w.EndDate.String(),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Box:       w.Box,
		})
	}
	return &OfferingResponse{
		ID:              o.ID,
		Name:            o.Name,
		DurationMinutes: o.DurationMinutes,
		Price:           int64(o.Price),
		Kind:            string(o.Kind),
		ParentID:        o.ParentID,
		AlwaysAvailable: o.AlwaysAvailable,
		Windows:         windows,
	}
}

// FromDomainProfessional конвертирует domain.Professional в ответ
func FromDomainProfessional(p *domain.Professional) *ProfessionalResponse {
	resp := &ProfessionalResponse{ID: p.ID, Name: p.Name, Specialty: p.Specialty}
	if p.Availability != nil {
		resp.Availability = &WindowDTO{
			StartDate: p.Availability.StartDate.String(),
			EndDate:   p.Availability.EndDate.String(),
			StartTime: p.Availability.StartTime.String(),
			EndTime:   p.Availability.EndTime.String(),
		}
	}
	return resp
}

// FromDomainClient конвертирует domain.Client в ответ
func FromDomainClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}

// FromDomainProduct конвертирует domain.Product в ответ
func FromDomainProduct(p *domain.Product) *ProductResponse {
	return &ProductResponse{ID: p.ID, Name: p.Name, Price: int64(p.Price)}
}

// FromDomainPaymentMethod конвертирует domain.PaymentMethod в ответ
func FromDomainPaymentMethod(m *domain.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{ID: m.ID, Name: m.Name, Active: m.Active}
}
