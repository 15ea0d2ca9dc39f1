package open_cart

import (
	"context"

	openCart "github.com/m04kA/SMC-BoxScheduler/internal/usecase/open_cart"
)

type OpenCartUseCase interface {
	Execute(ctx context.Context, req *openCart.Request) (*openCart.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
