package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deliverease/apiserver/config"
	"github.com/deliverease/apiserver/internal/db"
	"github.com/deliverease/apiserver/internal/handlers"
	"github.com/deliverease/apiserver/internal/services"
	"github.com/deliverease/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	client     *mongo.Client
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	client, database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	userRepo := store.NewUserRepository(database)
	restaurantRepo := store.NewRestaurantRepository(database)
	orderRepo := store.NewOrderRepository(database)
	reviewRepo := store.NewReviewRepository(database)

	// The signing key lives for the lifetime of the process. Without a
	// configured secret, a restart invalidates all outstanding tokens.
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = services.GenerateSigningKey()
	}
	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute

	userService := services.NewUserService(userRepo, services.BcryptHasher{}, secret, tokenTTL)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	orderService := services.NewOrderService(orderRepo, restaurantService, userService)
	reviewService := services.NewReviewService(reviewRepo, restaurantService)

	authMiddleware := handlers.RequireAuth(userService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware)
	})
	router.Route("/restaurants", func(r chi.Router) {
		handlers.RestaurantRouter(r, restaurantService, authMiddleware)
	})
	router.Route("/orders", func(r chi.Router) {
		handlers.OrderRouter(r, orderService, authMiddleware)
	})
	router.Route("/reviews", func(r chi.Router) {
		handlers.ReviewRouter(r, reviewService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		client:     client,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.client != nil {
		_ = s.client.Disconnect(context.Background())
	}
	return s.httpServer.Close()
}
