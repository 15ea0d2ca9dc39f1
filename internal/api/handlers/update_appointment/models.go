package update_appointment

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	updateAppointment "github.com/m04kA/SMC-BoxScheduler/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// UpdateAppointmentRequest HTTP request model, отсутствующие поля не меняются
type UpdateAppointmentRequest struct {
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Box             *string `json:"box,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Status          *string `json:"status,omitempty"`
	ProfessionalID  *int64  `json:"professionalId,omitempty"` // 0 снимает привязку
	OfferingID      *int64  `json:"offeringId,omitempty"`
	ClientID        *int64  `json:"clientId,omitempty"`
	Deposit         *int64  `json:"deposit,omitempty"`
	Price           *int64  `json:"price,omitempty"`
	Note            *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		ID:              id,
		Box:             r.Box,
		DurationMinutes: r.DurationMinutes,
		ProfessionalID:  r.ProfessionalID,
		OfferingID:      r.OfferingID,
		ClientID:        r.ClientID,
		Note:            r.Note,
	}

	if r.Date != nil {
		date, err := types.ParseDate(*r.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
		}
		req.Date = &date
	}
	if r.Time != nil {
		t, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, domain.NewValidationError("time", "invalid time, expected HH:MM")
		}
		req.Time = &t
	}
	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		req.Status = &status
	}
	if r.Deposit != nil {
		deposit := domain.Money(*r.Deposit)
		req.Deposit = &deposit
	}
	if r.Price != nil {
		price := domain.Money(*r.Price)
		req.Price = &price
	}

	return req, nil
}
