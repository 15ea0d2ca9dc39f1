package complete_settlement

import (
	"context"

	completeSettlement "github.com/m04kA/SMC-BoxScheduler/internal/usecase/complete_settlement"
)

type CompleteSettlementUseCase interface {
	Execute(ctx context.Context, req *completeSettlement.Request) (*completeSettlement.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
