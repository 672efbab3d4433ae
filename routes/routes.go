package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/tournament-predictor/handlers"
	"github.com/Dosada05/tournament-predictor/middleware"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router chi.Router,
	jwtSecret []byte,
	allowedOrigins []string,
	groupHandler *handlers.GroupHandler,
	bracketHandler *handlers.BracketHandler,
	predictionHandler *handlers.PredictionHandler,
	formatHandler *handlers.FormatHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// websocket connections are long-lived and stay outside the timeout
	router.Get("/ws/tournament", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Get("/groups", groupHandler.ListTables)
		r.Get("/groups/{groupID}", groupHandler.GetTable)
		r.Get("/bracket", bracketHandler.GetBracket)
		r.Get("/leaderboard", predictionHandler.Leaderboard)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))

			r.With(middleware.RequireRole(models.RolePlayer, models.RoleAdmin)).
				Put("/predictions/{gameID}", predictionHandler.SubmitPrediction)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Post("/groups/{groupID}/fixtures", groupHandler.ScheduleGroup)
				r.Put("/games/{gameID}/result", groupHandler.RecordResult)
				r.Delete("/games/{gameID}/result", groupHandler.ClearResult)

				r.Post("/playoff", bracketHandler.CreatePlayoff)
				r.Put("/playoff/{gameID}/result", bracketHandler.RecordResult)
				r.Delete("/playoff/{gameID}/result", bracketHandler.ClearResult)

				r.Route("/formats", func(r chi.Router) {
					r.Get("/", formatHandler.GetAllFormats)
					r.Post("/", formatHandler.CreateFormat)
					r.Get("/{formatID}", formatHandler.GetFormatByID)
					r.Put("/{formatID}/activate", formatHandler.ActivateFormat)
				})

				r.Get("/admin/dashboard", dashboardHandler.Stats)
			})
		})
	})
}
