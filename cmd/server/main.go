package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"curaise/internal/cart"
	"curaise/internal/config"
	"curaise/internal/database"
	"curaise/internal/handlers"
	"curaise/internal/middleware"
	"curaise/internal/repositories"
	"curaise/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize cart persistence
	cartRepo := newCartRepository(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	organizationRepo := repositories.NewOrganizationRepository(db.DB)
	fundraiserRepo := repositories.NewFundraiserRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	referralRepo := repositories.NewReferralRepository(db.DB)

	// Initialize services
	emailService := services.NewResendEmailService(services.ResendConfig{
		APIKey:    cfg.Resend.APIKey,
		FromEmail: cfg.Resend.FromEmail,
		FromName:  cfg.Resend.FromName,
	})

	userService := services.NewUserService(userRepo)
	organizationService := services.NewOrganizationService(organizationRepo, userRepo, cfg.Images.AllowedHosts)
	fundraiserService := services.NewFundraiserService(fundraiserRepo, referralRepo, userRepo, cfg.Images.AllowedHosts)
	orderService := services.NewOrderService(orderRepo, fundraiserRepo, userRepo, cartRepo, emailService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, orderService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	fundraiserHandler := handlers.NewFundraiserHandler(fundraiserService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cartHandler := handlers.NewCartHandler(cartRepo, fundraiserService)
	emailHandler := handlers.NewEmailHandler(orderService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.ProviderURL)
	rateLimiter := middleware.NewRateLimiter(300, time.Minute)

	// Initialize router
	r := chi.NewRouter()

	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(rateLimiter.Middleware)
	r.Use(authMiddleware.LoadUser)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"status":"ok"},"message":"healthy"}`))
	})

	// Public routes with seller-only write endpoints
	r.Route("/fundraiser", func(r chi.Router) {
		r.Get("/", fundraiserHandler.ListFundraisers)
		r.With(authMiddleware.RequireAuth).Post("/", fundraiserHandler.CreateFundraiser)
		r.Get("/{id}", fundraiserHandler.GetFundraiser)
		r.Get("/{id}/items", fundraiserHandler.GetFundraiserItems)
		r.With(authMiddleware.RequireAuth).Post("/{id}/referrals", fundraiserHandler.CreateReferral)
		r.With(authMiddleware.RequireAuth).Get("/{id}/referrals", fundraiserHandler.GetFundraiserReferrals)
	})

	r.Route("/organization", func(r chi.Router) {
		r.With(authMiddleware.RequireAuth).Post("/", organizationHandler.CreateOrganization)
		r.Get("/{id}", organizationHandler.GetOrganization)
		r.Get("/{id}/fundraisers", organizationHandler.GetOrganizationFundraisers)
		r.With(authMiddleware.RequireAuth).Post("/{id}/members", organizationHandler.AddOrganizationMember)
	})

	// Authenticated routes
	r.Route("/user", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/{id}", userHandler.GetUser)
		r.Post("/{id}", userHandler.UpsertUser)
		r.Get("/{id}/orders", userHandler.GetUserOrders)
		r.Get("/{id}/organizations", userHandler.GetUserOrganizations)
	})

	r.Route("/order", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/create", orderHandler.CreateOrder)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Post("/{id}/confirm-payment", orderHandler.ConfirmPayment)
		r.Post("/{id}/complete-pickup", orderHandler.CompletePickup)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Delete("/", cartHandler.ClearAllCarts)
		r.Get("/{fundraiserId}", cartHandler.GetCart)
		r.Post("/{fundraiserId}/items", cartHandler.AddItem)
		r.Put("/{fundraiserId}/items", cartHandler.UpdateItem)
		r.Delete("/{fundraiserId}/items/{itemId}", cartHandler.RemoveItem)
		r.Post("/{fundraiserId}/clear", cartHandler.ClearCart)
	})

	r.Route("/email", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/order-confirmation", emailHandler.SendOrderConfirmation)
	})

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", serverAddr)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}

// newCartRepository prefers Redis-backed cart snapshots, falling back to an
// in-process store when Redis is unreachable.
func newCartRepository(cfg *config.Config) cart.SnapshotRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		log.Println("Falling back to in-memory cart storage")
		return cart.NewMemoryRepository()
	}

	log.Println("Redis connection established successfully")
	ttl := time.Duration(cfg.Redis.CartTTLSeconds) * time.Second
	return cart.NewRedisRepository(client, ttl)
}
