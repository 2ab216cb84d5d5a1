package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exotic-travel-booking/backend/internal/config"
	"github.com/exotic-travel-booking/backend/internal/handlers"
	"github.com/exotic-travel-booking/backend/internal/metrics"
	"github.com/exotic-travel-booking/backend/internal/middleware"
	"github.com/exotic-travel-booking/backend/internal/repositories"
	"github.com/exotic-travel-booking/backend/internal/services"
	"github.com/exotic-travel-booking/backend/internal/tasks"
	"github.com/exotic-travel-booking/backend/pkg/database"
	"github.com/exotic-travel-booking/backend/pkg/observability"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing
	cleanup, err := observability.InitTracing("exotic-travel-booking", cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer cleanup()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	// Initialize performance monitoring
	metrics.InitGlobalCollector()
	defer metrics.StopGlobalCollector()

	// Wire the itinerary-planning stack: providers, engine, task shell
	planShell, err := tasks.Build(cfg, db, metrics.PlannerCounter(metrics.GetGlobalCollector()))
	if err != nil {
		log.Fatalf("Failed to wire planning stack: %v", err)
	}
	planRepo := repositories.NewPlanRepository(db)
	planService := services.NewPlanService(planRepo, planShell)

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(authService)
	planHandlers := handlers.NewPlanHandlers(planService)

	// Create HTTP server with new ServeMux
	mux := http.NewServeMux()

	// Setup rate limiter (10 requests per second, burst of 20)
	rateLimiter := middleware.NewRateLimiter(10.0, 20)

	// Setup circuit breaker
	circuitBreaker := middleware.NewCircuitBreaker(5, 30*time.Second)

	// Setup middleware
	handler := middleware.Chain(
		mux,
		middleware.SecurityHeaders(),
		middleware.RequestID(),
		middleware.PerformanceMiddleware(),
		middleware.PerformanceHeaders(),
		rateLimiter.Middleware,
		circuitBreaker.CircuitBreakerMiddleware(),
		middleware.InputValidation(),
		middleware.TimeoutMiddleware(30*time.Second),
		middleware.RequestSizeLimit(10<<20), // 10MB
		middleware.CompressionMiddleware(),
		middleware.CachingMiddleware(3600), // 1 hour cache for static content
		middleware.HealthCheck("/health"),
		middleware.Tracing(),
		middleware.CORS(),
		middleware.Logging(),
		middleware.Recovery(),
	)

	// Setup routes
	setupRoutes(mux, authHandlers, planHandlers, authService)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func setupRoutes(mux *http.ServeMux, authHandlers *handlers.AuthHandlers, planHandlers *handlers.PlanHandlers, authService *services.AuthService) {
	// Health check endpoint
	mux.HandleFunc("GET /health", handlers.HealthCheck)

	// Auth routes (public)
	mux.HandleFunc("POST /api/auth/register", authHandlers.Register)
	mux.HandleFunc("POST /api/auth/login", authHandlers.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandlers.RefreshToken)

	// Protected auth routes
	authMiddleware := middleware.AuthMiddleware(authService)
	mux.Handle("GET /api/auth/me", authMiddleware(http.HandlerFunc(authHandlers.Me)))

	// Itinerary plan routes (protected)
	mux.Handle("POST /api/plans", authMiddleware(http.HandlerFunc(planHandlers.Create)))
	mux.Handle("GET /api/plans/{id}", authMiddleware(http.HandlerFunc(planHandlers.GetByID)))
	mux.Handle("POST /api/plans/{id}/regenerate", authMiddleware(http.HandlerFunc(planHandlers.Regenerate)))
	mux.Handle("POST /api/plans/{planID}/stops/{stopID}/swap", authMiddleware(http.HandlerFunc(planHandlers.SwapStop)))
	mux.Handle("POST /api/plans/{planID}/stops/{stopID}/delay", authMiddleware(http.HandlerFunc(planHandlers.DelayReplan)))
	mux.Handle("POST /api/plans/{planID}/stops/{stopID}/undo-swap", authMiddleware(http.HandlerFunc(planHandlers.UndoSwap)))
}
