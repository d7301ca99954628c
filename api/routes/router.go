package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/personal/coffee-catalog-backend/api/controllers"
	"github.com/personal/coffee-catalog-backend/api/middleware"
	"github.com/personal/coffee-catalog-backend/internal/auth"
	"github.com/personal/coffee-catalog-backend/internal/coffees"
	"github.com/personal/coffee-catalog-backend/pkg/config"
	"github.com/personal/coffee-catalog-backend/pkg/enums"
	"github.com/personal/coffee-catalog-backend/pkg/logger"
)

// NewRouter assembles the HTTP surface: public auth endpoints, health
// probes, and the token-gated catalog routes with admin-only mutations.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	rateStore middleware.RateLimiterStore,
	authService auth.Service,
	coffeeService coffees.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, logg))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).
			Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).
			Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/coffee", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/", controllers.ListCoffees(coffeeService, logg))
		r.Get("/{id}", controllers.GetCoffee(coffeeService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

			r.Post("/", controllers.CreateCoffee(coffeeService, logg))
			r.Patch("/{id}", controllers.UpdateCoffee(coffeeService, logg))
			r.Patch("/{id}/deactivate", controllers.DeactivateCoffee(coffeeService, logg))
			r.Delete("/{id}", controllers.DeleteCoffee(coffeeService, logg))
		})
	})

	return r
}
