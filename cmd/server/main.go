package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gadgetshop-be/internal/auth"
	"gadgetshop-be/internal/cart"
	"gadgetshop-be/internal/config"
	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/metrics"
	"gadgetshop-be/internal/middleware"
	"gadgetshop-be/internal/product"
	"gadgetshop-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
)

const rateWindow = time.Minute

var (
	initDBFunc = func(cfg *config.Config, monitor *event.CommandMonitor) *db.Database {
		return db.InitDB(cfg, monitor)
	}
	startServerFunc = func(addr string, handler http.Handler) error {
		return http.ListenAndServe(addr, handler)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	if err := logger.Init(cfg.AppEnv); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	m := metrics.New(prometheus.NewRegistry())

	database := initDBFunc(cfg, m.CommandMonitor())
	defer database.Close(context.Background())

	router, err := newServer(cfg, database, m)
	if err != nil {
		return err
	}

	logger.L().Info("server running", zap.String("addr", "http://localhost:"+cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

// routeDeps is everything setupRouter mounts. Handlers are built by newServer.
type routeDeps struct {
	cfg *config.Config

	issuer  *auth.Issuer
	users   middleware.RoleLookup
	limiter middleware.RateLimiter
	metrics *metrics.Metrics

	authHandler     *auth.Handler
	userHandler     *user.Handler
	productHandler  *product.Handler
	cartHandler     *cart.Handler
	wishlistHandler *cart.Handler
}

func newServer(cfg *config.Config, database *db.Database, m *metrics.Metrics) (http.Handler, error) {
	issuer, err := auth.NewIssuer(cfg.AccessTokenSecret, auth.WithIssuerKeyHash(cfg.IssuerKeyHash))
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	userSvc := user.NewService(user.NewRepository(database.Users()))

	productRepo := product.NewRepository(database.Products())
	// The list service only resolves ids, so it gets its own product service
	// without the delete listener.
	listSvc := cart.NewService(cart.NewRepository(database.Users()), product.NewService(productRepo))

	var productOpts []product.ServiceOption
	if cfg.CascadeProductDelete {
		productOpts = append(productOpts, product.WithDeleteListener(listSvc))
	}
	productSvc := product.NewService(productRepo, productOpts...)

	return setupRouter(routeDeps{
		cfg:             cfg,
		issuer:          issuer,
		users:           userSvc,
		limiter:         newRateLimiter(cfg),
		metrics:         m,
		authHandler:     auth.NewHandler(issuer),
		userHandler:     user.NewHandler(userSvc),
		productHandler:  product.NewHandler(productSvc),
		cartHandler:     cart.NewHandler(listSvc, cart.KindCart),
		wishlistHandler: cart.NewHandler(listSvc, cart.KindWishlist),
	}), nil
}

func newRateLimiter(cfg *config.Config) middleware.RateLimiter {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return middleware.NewRedisLimiter(rdb, rateWindow)
	}

	limiter := middleware.NewMemoryLimiter()
	go limiter.RunCleanup(context.Background())
	return limiter
}

// useMiddleware installs the stack shared by every route. The recoverer sits
// inside the logging middleware so a recovered panic is logged as a 500.
func useMiddleware(r chi.Router, d routeDeps) {
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(d.metrics.Middleware)
	r.Use(middleware.CORS(d.cfg.CORSAllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(d.limiter))
}

func setupRouter(d routeDeps) http.Handler {
	r := chi.NewRouter()
	useMiddleware(r, d)

	authenticate := middleware.Authenticate(d.issuer)
	requireSeller := middleware.RequireRole(d.users, string(user.RoleSeller))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Server is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", d.metrics.Handler())

	// Public
	r.Post("/authentication", d.authHandler.Issue)
	r.Post("/users", d.userHandler.Register)
	r.Get("/user/{email}", d.userHandler.GetByEmail)
	r.Get("/products", d.productHandler.Featured)
	r.Get("/all-products", d.productHandler.Search)
	r.Route("/cart", d.cartHandler.Routes)
	r.Route("/wishlist", d.wishlistHandler.Routes)

	// Token required
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/users", d.userHandler.List)
		r.Patch("/users/role/{id}", d.userHandler.UpdateRole)
		r.Patch("/users/status/{id}", d.userHandler.UpdateStatus)
		r.Delete("/users/{id}", d.userHandler.Delete)
	})

	// Token + seller role
	r.Group(func(r chi.Router) {
		r.Use(authenticate, requireSeller)

		r.Post("/add-products", d.productHandler.Create)
	})

	// Product mutations, gated only when PROTECT_PRODUCT_MUTATIONS is set
	r.Group(func(r chi.Router) {
		if d.cfg.ProtectProductMutations {
			r.Use(authenticate, requireSeller)
		}

		r.Patch("/products/{id}", d.productHandler.Update)
		r.Delete("/product/{id}", d.productHandler.Delete)
	})

	return r
}
