package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sut-badminton/registration/config"
	_ "github.com/sut-badminton/registration/docs"
	"github.com/sut-badminton/registration/handlers"
	"github.com/sut-badminton/registration/metrics"
	"github.com/sut-badminton/registration/middleware"
	"github.com/sut-badminton/registration/models"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Dependencies collects everything the router needs.
// A nil RateLimiter or Gatherer disables the corresponding feature.
type Dependencies struct {
	Logger    *slog.Logger
	CORS      config.CORSConfig
	JWTSecret string
	Metrics   *metrics.Collectors
	Gatherer  prometheus.Gatherer

	PublicWriteLimiter *middleware.RateLimiter
	LoginLimiter       *middleware.RateLimiter

	Registration *handlers.RegistrationHandler
	Team         *handlers.TeamHandler
	Admin        *handlers.AdminHandler
	Config       *handlers.ConfigHandler
	Auth         *handlers.AuthHandler
	WebSocket    *handlers.WebSocketHandler
	Health       *handlers.HealthHandler
}

func SetupRoutes(r chi.Router, d Dependencies) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORS(d.CORS, logger))

	r.Get("/healthz", d.Health.Healthz)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Get("/status/name/{teamName}", d.Team.GetStatusByName)
		r.Get("/status/{teamCode}", d.Team.GetStatusByCode)
		r.Get("/team-count-by-level", d.Team.CountByLevel)
		r.Get("/config/qr_code_path", d.Config.GetQRCodePath)

		r.Group(func(r chi.Router) {
			r.Use(d.PublicWriteLimiter.Handler)

			r.Post("/register", d.Registration.Register)
			r.Post("/upload-slip/{teamCode}", d.Team.UploadSlip)
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(d.LoginLimiter.Handler).Post("/login", d.Auth.Login)

			// Защищенные маршруты только для администратора
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate([]byte(d.JWTSecret)))
				r.Use(middleware.Authorize(models.RoleAdmin))

				r.Get("/teams", d.Admin.ListTeams)
				r.Get("/team-details/{teamId}", d.Admin.GetTeamDetails)
				r.Post("/update-status", d.Admin.UpdateStatus)
				r.Post("/upload-qr", d.Config.UploadQRCode)
				r.Get("/ws", d.WebSocket.ServeWs)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
