package open_cart

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
)

type Handler struct {
	useCase OpenCartUseCase
	logger  Logger
}

func NewHandler(useCase OpenCartUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/cart
// Handle POST /api/v1/appointments/{appointmentId}/cart
//
// GET возвращает исходную корзину записи, POST применяет операции из тела
// и возвращает получившуюся корзину без сохранения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("%s /appointments/{id}/cart - Invalid appointment ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CartRequest
	if r.Method == http.MethodPost {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /appointments/{id}/cart - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("%s /appointments/{id}/cart - Rejected: appointment_id=%d: %v", r.Method, appointmentID, err)
			return
		}
		h.logger.Error("%s /appointments/{id}/cart - Failed to open cart: appointment_id=%d, error=%v", r.Method, appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
