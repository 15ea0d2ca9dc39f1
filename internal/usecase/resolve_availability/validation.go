package resolve_availability

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

// validateRequest проверяет входные данные запроса ячейки
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
	return nil
}

func (uc *UseCase) hasBox(box string) bool {
	for _, b := range uc.boxes {
		if b == box {
			return true
		}
	}
	return false
}
