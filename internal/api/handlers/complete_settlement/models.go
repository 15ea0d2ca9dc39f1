package complete_settlement

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/service/appointments/models"
	completeSettlement "github.com/m04kA/SMC-BoxScheduler/internal/usecase/complete_settlement"
)

func fromUseCaseResponse(resp *completeSettlement.Response) *models.SaleResponse {
	out := models.FromDomainSale(resp.Sale)
	out.AppointmentID = resp.AppointmentID
	out.AppointmentStatus = string(resp.Status)
	return out
}
