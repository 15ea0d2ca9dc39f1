package delete_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.Delete(r.Context(), appointmentID); err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("DELETE /appointments/{id} - Rejected: appointment_id=%d: %v", appointmentID, err)
			return
		}
		h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: appointment_id=%d, error=%v", appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: appointment_id=%d", appointmentID)
	handlers.RespondNoContent(w)
}
