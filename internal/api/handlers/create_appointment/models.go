package create_appointment

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	createAppointment "github.com/m04kA/SMC-BoxScheduler/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date            string  `json:"date"` // "2025-06-10"
	Time            string  `json:"time"` // "10:00"
	Box             string  `json:"box"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Status          *string `json:"status,omitempty"`
	ProfessionalID  *int64  `json:"professionalId,omitempty"`
	OfferingID      *int64  `json:"offeringId,omitempty"`
	ClientID        *int64  `json:"clientId,omitempty"`
	Deposit         int64   `json:"deposit"`
	Price           *int64  `json:"price,omitempty"`
	Note            *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
	}
	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, domain.NewValidationError("time", "invalid time, expected HH:MM")
	}

	req := &createAppointment.Request{
		Date:            date,
		Time:            t,
		Box:             r.Box,
		DurationMinutes: r.DurationMinutes,
		ProfessionalID:  r.ProfessionalID,
		OfferingID:      r.OfferingID,
		ClientID:        r.ClientID,
		Deposit:         domain.Money(r.Deposit),
		Note:            r.Note,
	}
	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		req.Status = &status
	}
	if r.Price != nil {
		price := domain.Money(*r.Price)
		req.Price = &price
	}
	return req, nil
}
