package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bmimportados/backoffice-backend/api/controllers"
	"github.com/bmimportados/backoffice-backend/api/middleware"
	"github.com/bmimportados/backoffice-backend/internal/auth"
	"github.com/bmimportados/backoffice-backend/internal/clients"
	"github.com/bmimportados/backoffice-backend/internal/products"
	"github.com/bmimportados/backoffice-backend/internal/quotes"
	"github.com/bmimportados/backoffice-backend/internal/summary"
	"github.com/bmimportados/backoffice-backend/pkg/auth/session"
	"github.com/bmimportados/backoffice-backend/pkg/config"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
	"github.com/bmimportados/backoffice-backend/pkg/metrics"
	"github.com/bmimportados/backoffice-backend/pkg/redis"
	"github.com/bmimportados/backoffice-backend/pkg/storage/uploader"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Sessions session.Checker
	Metrics  *metrics.HTTPMetrics

	AuthService     auth.Service
	ClientsService  clients.Service
	ProductsService products.Service
	QuotesService   quotes.Service
	SummaryService  summary.Service
	Uploader        *uploader.Client
}

// NewRouter assembles the full route tree. Admin routes sit behind the
// session guard; the public surface is limited to quote intake and the
// active-product listing.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.AuthService, cfg.JWT, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		})

		r.Post("/quotes", controllers.QuotesIntake(deps.QuotesService, logg))
		r.Get("/products", controllers.PublicProductsList(deps.ProductsService, logg))
		r.Get("/products/{slug}", controllers.PublicProductsGet(deps.ProductsService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientsList(deps.ClientsService, logg))
			r.Post("/", controllers.ClientsCreate(deps.ClientsService, logg))
			r.Get("/{id}", controllers.ClientsGet(deps.ClientsService, logg))
			r.Put("/{id}", controllers.ClientsUpdate(deps.ClientsService, logg))
			r.Delete("/{id}", controllers.ClientsDelete(deps.ClientsService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.ProductsService, logg))
			r.Post("/", controllers.ProductsCreate(deps.ProductsService, logg))
			r.Get("/{id}", controllers.ProductsGet(deps.ProductsService, logg))
			r.Put("/{id}", controllers.ProductsUpdate(deps.ProductsService, logg))
			r.Delete("/{id}", controllers.ProductsDelete(deps.ProductsService, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.QuotesList(deps.QuotesService, logg))
			r.Get("/{id}", controllers.QuotesGet(deps.QuotesService, logg))
		})

		r.Get("/summary", controllers.Summary(deps.SummaryService, logg))
		r.Post("/upload", controllers.Upload(deps.Uploader, logg))
	})

	return r
}
