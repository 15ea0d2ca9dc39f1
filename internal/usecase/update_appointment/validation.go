package update_appointment

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// validateRequest проверяет поля патча без обращения к хранилищу
func (uc *UseCase) validateRequest(req *Request) error {
	if req.ID <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}
	if req.Date != nil && req.Date.IsZero() {
		return domain.NewValidationError("date", "must not be empty")
	}
	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return domain.NewValidationError("time", err.Error())
		}
	}
	if req.Box != nil && !uc.hasBox(*req.Box) {
		return domain.NewValidationError("box", "unknown box")
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return domain.NewValidationError("durationMinutes", "out of range")
		}
	}
	if req.Status != nil && !req.Status.IsValid() {
		return domain.NewValidationError("status", "unknown status")
	}
	if req.Deposit != nil {
		if err := domain.CheckAmount("deposit", *req.Deposit); err != nil {
			return err
		}
	}
	if req.Price != nil {
		if err := domain.CheckAmount("price", *req.Price); err != nil {
			return err
		}
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return domain.NewValidationError("note", "is too long")
	}
	return nil
}

// validateStatusChange проверяет правила смены статуса
func (uc *UseCase) validateStatusChange(from, to domain.AppointmentStatus) error {
	if from == to {
		return nil
	}
	if from == domain.StatusCompleted {
		return domain.NewValidationError("status", "completed appointment cannot change status")
	}
	if uc.opts.EnforceTransitions && !domain.IsValidTransition(from, to) {
		return domain.NewValidationError("status", "transition "+string(from)+" -> "+string(to)+" is not allowed")
	}
	return nil
}

func (uc *UseCase) hasBox(box string) bool {
	for _, b := range uc.opts.Boxes {
		if b == box {
			return true
		}
	}
	return false
}
