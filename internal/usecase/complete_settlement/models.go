package complete_settlement

import (
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/internal/usecase/open_cart"
)

// Request операции корзины, после которых расчет закрывается
type Request = open_cart.Request

// Response созданная продажа
type Response struct {
	Sale          *domain.Sale
	AppointmentID int64
	Status        domain.AppointmentStatus
}
