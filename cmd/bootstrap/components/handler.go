package components

import (
	"shareit/internal/handler"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/servicetoken"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

const metricsNamespace = "shareit"

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewUserHandler,
		api.NewItemHandler,
		api.NewBookingHandler,
		api.NewRequestHandler,
		NewHandlers,
		NewObservability,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Users    *api.UserHandler
	Items    *api.ItemHandler
	Bookings *api.BookingHandler
	Requests *api.RequestHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Users:    p.Users,
		Items:    p.Items,
		Bookings: p.Bookings,
		Requests: p.Requests,
	}
}

func NewObservability(logger *middleware.Logger, tokens *servicetoken.Service) handler.Observability {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := handler.Observability{
		Logger:   logger,
		Registry: reg,
		Metrics:  middleware.NewMetrics(reg, metricsNamespace),
	}
	// keep the interface nil rather than holding a nil *Service
	if tokens != nil {
		obs.Tokens = tokens
	}
	return obs
}
