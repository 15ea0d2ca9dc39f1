package get_grid

import (
	resolveAvailability "github.com/m04kA/SMC-BoxScheduler/internal/usecase/resolve_availability"
)

// GridCellResponse ячейка сетки
type GridCellResponse struct {
	Time            string  `json:"time"`
	Box             string  `json:"box"`
	AppointmentID   *int64  `json:"appointmentId,omitempty"`
	Status          *string `json:"status,omitempty"`
	ProfessionalIDs []int64 `json:"professionalIds"`
	OfferingIDs     []int64 `json:"offeringIds"`
}

// GridResponse HTTP response model
type GridResponse struct {
	Date  string             `json:"date"`
	Times []string           `json:"times"`
	Boxes []string           `json:"boxes"`
	Cells []GridCellResponse `json:"cells"`
}

func fromUseCaseResponse(resp *resolveAvailability.GridResponse) *GridResponse {
	out := &GridResponse{
		Date:  resp.Date.String(),
		Times: make([]string, 0, len(resp.Times)),
		Boxes: resp.Boxes,
		Cells: make([]GridCellResponse, 0, len(resp.Cells)),
	}
	for _, t := range resp.Times {
		out.Times = append(out.Times, t.String())
	}
	for _, c := range resp.Cells {
		cell := GridCellResponse{
			Time:            c.Time.String(),
			Box:             c.Box,
			AppointmentID:   c.AppointmentID,
			ProfessionalIDs: nonNil(c.ProfessionalIDs),
			OfferingIDs:     nonNil(c.OfferingIDs),
		}
		if c.Status != nil {
			status := string(*c.Status)
			cell.Status = &status
		}
		out.Cells = append(out.Cells, cell)
	}
	return out
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
