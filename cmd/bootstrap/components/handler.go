package components

import (
	"closet-rental/internal/handler"
	"closet-rental/internal/handler/api"
	"closet-rental/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRentalHandler,
		api.NewCatalogHandler,
		api.NewReviewHandler,
		api.NewNotificationHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	rental *api.RentalHandler,
	catalog *api.CatalogHandler,
	review *api.ReviewHandler,
	notification *api.NotificationHandler,
) handler.Handlers {
	return handler.Handlers{
		Rental:       rental,
		Catalog:      catalog,
		Review:       review,
		Notification: notification,
	}
}
