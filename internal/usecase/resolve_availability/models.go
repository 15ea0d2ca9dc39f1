package resolve_availability

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// Request запрос доступности одной ячейки
type Request struct {
	Date types.Date
	Time types.TimeString
	Box  string
}

// Response специалисты и услуги, доступные в ячейке
type Response struct {
	Cell          domain.Cell
	Professionals []*domain.Professional
	Offerings     []*domain.Offering
}

// GridRequest запрос сетки на день
type GridRequest struct {
	Date types.Date
}

// GridCell одна ячейка сетки
type GridCell struct {
	Time            types.TimeString
	Box             string
	AppointmentID   *int64 // nil - ячейка свободна
	Status          *domain.AppointmentStatus
	ProfessionalIDs []int64
	OfferingIDs     []int64
}

// GridResponse сетка на день: строки по времени, внутри по боксам
type GridResponse struct {
	Date  types.Date
	Times []types.TimeString
	Boxes []string
	Cells []GridCell
}
