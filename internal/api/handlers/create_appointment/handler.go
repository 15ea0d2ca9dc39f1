package create_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /appointments - Rejected: date=%s, time=%s, box=%q: %v", req.Date, req.Time, req.Box, err)
			return
		}
		h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, box=%q, error=%v",
			req.Date, req.Time, req.Box, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d", appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appointment))
}
