package get_grid

import (
	"context"

	resolveAvailability "github.com/m04kA/SMC-BoxScheduler/internal/usecase/resolve_availability"
)

type GridUseCase interface {
	Grid(ctx context.Context, req *resolveAvailability.GridRequest) (*resolveAvailability.GridResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
