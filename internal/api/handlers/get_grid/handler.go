package get_grid

import (
	"net/http"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-BoxScheduler/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

type Handler struct {
	useCase GridUseCase
	logger  Logger
}

func NewHandler(useCase GridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/grid?date=2025-06-10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	date, err := types.ParseDate(raw)
	if err != nil {
		h.logger.Warn("GET /grid - Invalid date: %q", raw)
		handlers.RespondDomainError(w, domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD"))
		return
	}

	resp, err := h.useCase.Grid(r.Context(), &resolveAvailability.GridRequest{Date: date})
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /grid - Rejected: date=%s: %v", raw, err)
			return
		}
		h.logger.Error("GET /grid - Failed to build grid: date=%s, error=%v", raw, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(resp))
}
