package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/hrvlabs/stress-monitor/docs"
	"github.com/hrvlabs/stress-monitor/internal/api/handler"
	"github.com/hrvlabs/stress-monitor/internal/api/middleware"
)

type Router struct {
	userHandler        *handler.UserHandler
	measurementHandler *handler.MeasurementHandler
	stressHandler      *handler.StressHandler
	baselineHandler    *handler.BaselineHandler
	insightsHandler    *handler.InsightsHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	measurementHandler *handler.MeasurementHandler,
	stressHandler *handler.StressHandler,
	baselineHandler *handler.BaselineHandler,
	insightsHandler *handler.InsightsHandler,
) *Router {
	return &Router{
		userHandler:        userHandler,
		measurementHandler: measurementHandler,
		stressHandler:      stressHandler,
		baselineHandler:    baselineHandler,
		insightsHandler:    insightsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Raw measurements (nested under users)
			r.Route("/{userId}/measurements", func(r chi.Router) {
				r.Post("/hrv", rt.measurementHandler.CreateHRVBatch)
				r.Get("/hrv", rt.measurementHandler.ListHRV)
				r.Post("/heart-rate", rt.measurementHandler.CreateHeartRateBatch)
				r.Get("/heart-rate", rt.measurementHandler.ListHeartRate)
			})

			// Stress scoring, history, trends, and insights
			r.Route("/{userId}/stress", func(r chi.Router) {
				r.Post("/score", rt.stressHandler.Score)
				r.Get("/history", rt.stressHandler.History)
				r.Get("/trends", rt.stressHandler.Trends)
				r.Get("/insights", rt.insightsHandler.GetInsights)
				r.Post("/insights/feedback", rt.insightsHandler.PostFeedback)
			})

			// Personal baseline
			r.Route("/{userId}/baseline", func(r chi.Router) {
				r.Get("/", rt.baselineHandler.Get)
				r.Post("/recalculate", rt.baselineHandler.Recalculate)
			})
		})
	})

	return r
}
