package components

import (
	"library-circulation/internal/handler"
	"library-circulation/internal/handler/api"
	"library-circulation/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewCheckoutHandler,
		api.NewChangesHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
