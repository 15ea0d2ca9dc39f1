package resolve_availability

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=2025-06-10&time=10:00&box=Box+1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date, t, box := query.Get("date"), query.Get("time"), query.Get("box")

	req, err := parseQuery(date, t, box)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: date=%q, time=%q: %v", date, t, err)
		handlers.RespondDomainError(w, err)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /availability - Rejected: date=%s, time=%s, box=%q: %v", date, t, box, err)
			return
		}
		h.logger.Error("GET /availability - Failed to resolve availability: date=%s, time=%s, box=%q, error=%v", date, t, box, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
