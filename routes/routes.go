package routes

import (
	"net/http"
	"time"

	"github.com/DucQuyen199/quanlybongda/docs"
	"github.com/DucQuyen199/quanlybongda/handlers"
	"github.com/DucQuyen199/quanlybongda/metrics"
	"github.com/DucQuyen199/quanlybongda/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // alias, чтобы не конфликтовать с нашим middleware
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Dependencies struct {
	ScheduleHandler *handlers.ScheduleHandler
	HealthHandler   *handlers.HealthHandler
	Metrics         *metrics.Metrics
	JWTSecret       []byte
	AllowedOrigins  []string
	RequestTimeout  time.Duration
}

func SetupRoutes(router chi.Router, deps Dependencies) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
	}
	if deps.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(deps.RequestTimeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Get("/healthz", deps.HealthHandler.Healthz)
	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Swagger UI поверх встроенного OpenAPI-документа
	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.OpenAPI)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api/lichtd", func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.JWTSecret))
		r.Use(middleware.RequireRole(middleware.RoleAdmin))

		r.Get("/", deps.ScheduleHandler.ListHandler)
		r.Post("/", deps.ScheduleHandler.CreateHandler)
		r.Get("/{scheduleID}", deps.ScheduleHandler.GetByIDHandler)
		r.Put("/{scheduleID}", deps.ScheduleHandler.UpdateHandler)
		r.Delete("/{scheduleID}", deps.ScheduleHandler.DeleteHandler)
	})
}
