package create_appointment

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// validateRequest проверяет входные данные без обращения к хранилищу
func (uc *UseCase) validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}
	if err := req.Time.Validate(); err != nil {
		return domain.NewValidationError("time", err.Error())
	}
	if !uc.hasBox(req.Box) {
		return domain.NewValidationError("box", "unknown box")
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return domain.NewValidationError("durationMinutes", "out of range")
		}
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return domain.NewValidationError("status", "unknown status")
		}
		// Завершить запись можно только через расчет, отмененную создавать бессмысленно
		if req.Status.IsTerminal() {
			return domain.NewValidationError("status", "initial status cannot be terminal")
		}
	}

	if err := domain.CheckAmount("deposit", req.Deposit); err != nil {
		return err
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

func (uc *UseCase) hasBox(box string) bool {
	for _, b := range uc.opts.Boxes {
		if b == box {
			return true
		}
	}
	return false
}
