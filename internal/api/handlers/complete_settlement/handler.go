package complete_settlement

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/open_cart"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
)

type Handler struct {
	useCase CompleteSettlementUseCase
	logger  Logger
}

func NewHandler(useCase CompleteSettlementUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/settlement
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/settlement - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req open_cart.CartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/settlement - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /appointments/{id}/settlement - Rejected: appointment_id=%d: %v", appointmentID, err)
			return
		}
		h.logger.Error("POST /appointments/{id}/settlement - Failed to complete settlement: appointment_id=%d, error=%v", appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /appointments/{id}/settlement - Settlement completed: appointment_id=%d, receipt=%s, total=%s",
		appointmentID, resp.Sale.ReceiptNumber, resp.Sale.Total)
	handlers.RespondJSON(w, http.StatusCreated, fromUseCaseResponse(resp))
}
