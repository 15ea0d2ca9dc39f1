package list_appointments

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/appointments/models"
)

const (
	msgInvalidIncludeCancelled = "некорректное значение includeCancelled, ожидается true или false"
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

// Handle GET /api/v1/appointments?from=2025-06-01&to=2025-06-30&box=Box+1&status=reserved&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := models.ListAppointmentsRequest{
		From:   optional(query.Get("from")),
		To:     optional(query.Get("to")),
		Box:    optional(query.Get("box")),
		Status: optional(query.Get("status")),
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid includeCancelled: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidIncludeCancelled)
			return
		}
		req.IncludeCancelled = include
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
