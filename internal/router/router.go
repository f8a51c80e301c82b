package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/handlers"
	"github.com/GregMSThompson/utools/internal/middleware"
	"github.com/GregMSThompson/utools/internal/telemetry"
)

type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	Observer       *telemetry.ToolObserver
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}

	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if opts.MaxBodyBytes > 0 {
		r.Use(chimiddleware.RequestSize(opts.MaxBodyBytes))
	}

	ih := handlers.NewInfoHandlers(deps)
	ch := handlers.NewConverterHandlers(deps)
	ph := handlers.NewPingHandlers(deps)

	// set before mounting so sub-routers inherit them
	r.NotFound(ih.NotFound)
	r.MethodNotAllowed(ih.MethodNotAllowed)

	r.Get("/", ih.GetBanner)
	r.Get("/healthz", ih.GetHealth)
	r.Get("/tools", ih.ListTools)

	routes := map[string]chi.Router{
		catalog.UnitConverterID: ch.ConverterRoutes(),
		catalog.NetworkPingID:   ph.PingRoutes(),
	}
	for _, tool := range deps.Catalog.All() {
		sub, ok := routes[tool.ID]
		if !ok {
			continue
		}
		r.Group(func(r chi.Router) {
			r.Use(middleware.ToolTelemetry(opts.Observer, tool.ID))
			r.Mount(tool.BasePath, sub)
		})
	}
	return r
}
