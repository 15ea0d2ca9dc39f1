package resolve_availability

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	catalogModels "github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
	resolveAvailability "github.com/m04kA/SMC-BoxScheduler/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date          string                                `json:"date"`
	Time          string                                `json:"time"`
	Box           string                                `json:"box"`
	Professionals []*catalogModels.ProfessionalResponse `json:"professionals"`
	Offerings     []*catalogModels.OfferingResponse     `json:"offerings"`
}

func parseQuery(date, t, box string) (*resolveAvailability.Request, error) {
	d, err := types.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
	}
	ts, err := types.NewTimeStringFromString(t)
	if err != nil {
		return nil, domain.NewValidationError("time", "invalid time, expected HH:MM")
	}
	return &resolveAvailability.Request{Date: d, Time: ts, Box: box}, nil
}

func fromUseCaseResponse(resp *resolveAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:          resp.Cell.Date.String(),
		Time:          resp.Cell.Time.String(),
		Box:           resp.Cell.Box,
		Professionals: make([]*catalogModels.ProfessionalResponse, 0, len(resp.Professionals)),
		Offerings:     make([]*catalogModels.OfferingResponse, 0, len(resp.Offerings)),
	}
	for _, p := range resp.Professionals {
		out.Professionals = append(out.Professionals, catalogModels.FromDomainProfessional(p))
	}
	for _, o := range resp.Offerings {
		out.Offerings = append(out.Offerings, catalogModels.FromDomainOffering(o))
	}
	return out
}
