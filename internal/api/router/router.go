package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/unrolled/secure"
	"golang.org/x/sync/errgroup"

	_ "stockcount/docs" // registra a especificação Swagger
	"stockcount/internal/api/auth"
	"stockcount/internal/api/count"
	"stockcount/internal/api/inventory"
	"stockcount/internal/api/product"
	"stockcount/internal/api/user"
	"stockcount/internal/api/warehouse"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/cache"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/metrics"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

const readyTimeout = 2 * time.Second

// Pinger é qualquer dependência verificável pelo /ready (PostgreSQL, Redis).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapta uma função a Pinger.
type PingerFunc func(ctx context.Context) error

// PingContext implementa Pinger.
func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Warehouse *warehouse.Handler
	Product   *product.Handler
	Count     *count.Handler
	Inventory *inventory.Handler
}

// Options reúne a infraestrutura compartilhada pelo roteador.
type Options struct {
	Logger          logger.Logger
	Authenticator   *middleware.Authenticator
	Metrics         *metrics.Metrics
	RateLimitClient cache.Client
	RateLimit       int
	RateLimitPeriod time.Duration
	Production      bool
	Dependencies    map[string]Pinger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        opts.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !opts.Production,
	})

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(secureMiddleware.Handler)
	r.Use(opts.Metrics.Middleware)

	// --- Rotas operacionais ---
	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(opts.Dependencies, opts.Logger))
	r.Handle("/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	authn := opts.Authenticator

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimitClient != nil {
			r.Use(middleware.RateLimiter(opts.RateLimitClient, opts.RateLimit, opts.RateLimitPeriod, opts.Logger))
		}

		// --- Autenticação ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.RegisterHandler)
			r.Post("/login", h.Auth.LoginHandler)
			r.With(authn.OptionalAuth).Post("/register-admin", h.Auth.RegisterAdminHandler)
		})

		// Tudo abaixo exige um bearer token válido.
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.MeHandler)
				r.Get("/me/warehouses", h.User.MyWarehousesHandler)

				r.Group(func(r chi.Router) {
					r.Use(authn.RequireAdmin)
					r.Post("/", h.User.CreateUserHandler)
					r.Get("/", h.User.ListUsersHandler)
					r.Get("/{id}", h.User.GetUserHandler)
					r.Put("/{id}", h.User.UpdateUserHandler)
					r.Delete("/{id}", h.User.DeleteUserHandler)
					r.Post("/{id}/assign-warehouses", h.User.AssignWarehousesHandler)
					r.Get("/{id}/warehouses", h.User.GetUserWarehousesHandler)
				})
			})

			r.Route("/warehouses", func(r chi.Router) {
				r.Get("/", h.Warehouse.GetAllWarehousesHandler)
				r.Get("/{id}", h.Warehouse.GetWarehouseByIDHandler)
				r.With(authn.RequireAdmin).Post("/", h.Warehouse.CreateWarehouseHandler)
				r.With(authn.RequireAdmin).Put("/{id}", h.Warehouse.UpdateWarehouseHandler)
				r.With(authn.RequireAdmin).Delete("/{id}", h.Warehouse.DeleteWarehouseHandler)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Product.GetAllProductsHandler)
				r.Get("/{id}", h.Product.GetProductByIDHandler)
				r.With(authn.RequireAdmin).Post("/", h.Product.CreateProductHandler)
				r.With(authn.RequireAdmin).Put("/{id}", h.Product.UpdateProductHandler)
				r.With(authn.RequireAdmin).Delete("/{id}", h.Product.DeleteProductHandler)
			})

			r.Route("/inventory-counts", func(r chi.Router) {
				r.Post("/", h.Count.CreateCount)
				r.Get("/", h.Count.ListCounts)
				r.Get("/{id}", h.Count.GetCount)
				r.With(authn.RequireAdmin).Put("/{id}/close", h.Count.CloseCount)
				r.Post("/{id}/items", h.Count.AddItem)
				r.Get("/{id}/items", h.Count.ListItems)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Post("/", h.Inventory.AddItem)
				r.Get("/", h.Inventory.ListAll)
				r.Put("/{id}", h.Inventory.UpdateQuantity)
				r.With(authn.RequireAdmin).Delete("/{id}", h.Inventory.DeleteItem)
				r.Get("/warehouse/{warehouseID}", h.Inventory.GetWarehouse)
				r.Get("/warehouse/{warehouseID}/product/{productID}", h.Inventory.GetProductQuantity)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, req, opts.Logger, apperror.NewNotFoundError("Rota não encontrada."))
	})

	return r
}

// healthHandler responde à verificação de liveness.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, nil, http.StatusOK, map[string]string{"status": "ok"})
}

// readyHandler verifica as dependências em paralelo. Qualquer falha gera 503.
func readyHandler(deps map[string]Pinger, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)
		for name, dep := range deps {
			g.Go(func() error {
				if err := dep.PingContext(ctx); err != nil {
					return apperror.NewInternalError(name+" indisponível", err)
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			if log != nil {
				log.Warn("Verificação de prontidão falhou.", map[string]interface{}{"error": err.Error()})
			}
			respond.JSON(w, nil, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		respond.JSON(w, log, http.StatusOK, map[string]string{"status": "ready"})
	}
}
