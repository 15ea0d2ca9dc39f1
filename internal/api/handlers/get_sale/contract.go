package get_sale

import (
	"context"

	"github.com/m04kA/SMC-BoxScheduler/internal/service/appointments/models"
)

type SaleService interface {
	GetSale(ctx context.Context, appointmentID int64) (*models.SaleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
