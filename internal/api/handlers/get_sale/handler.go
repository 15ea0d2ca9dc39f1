package get_sale

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
)

type Handler struct {
	service SaleService
	logger  Logger
}

func NewHandler(service SaleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/sale
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/sale - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	sale, err := h.service.GetSale(r.Context(), appointmentID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			return
		}
		h.logger.Error("GET /appointments/{id}/sale - Failed to get sale: appointment_id=%d, error=%v", appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sale)
}
