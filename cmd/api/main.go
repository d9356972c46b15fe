// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/imadgeboyega/soulbond-backend/internal/assessment"
	"github.com/imadgeboyega/soulbond-backend/internal/auth"
	"github.com/imadgeboyega/soulbond-backend/internal/common/database"
	"github.com/imadgeboyega/soulbond-backend/internal/config"
	"github.com/imadgeboyega/soulbond-backend/internal/dating"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Soulbond API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxLifetime:  cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Run database migrations
	log.Println("🔨 Step 4: Running database migrations...")
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	err = database.RunMigrations(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 5. Connect to Redis (optional)
	log.Println("📮 Step 5: Connecting to Redis...")
	picksCache := connectPicksCache(cfg.RedisURL)

	// 6. Initialize modules
	log.Println("🧩 Step 6: Initializing modules...")
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	profileRepo := profile.NewPostgresRepository(db)
	profileHandler := profile.NewHandler(profile.NewService(profileRepo))
	log.Println("   ✅ Profile module initialized")

	catalog, err := assessment.DefaultCatalog()
	if err != nil {
		log.Fatal("❌ Failed to load question catalog: ", err)
	}
	catalog.SetPoolDraw(cfg.AssessmentPoolDraw)
	assessmentHandler := assessment.NewHandler(assessment.NewService(catalog, profileRepo, nil))
	log.Printf("   ✅ Assessment module initialized (%d pool questions, drawing %d)", len(catalog.Pool), catalog.PoolDraw)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *dating.Hub
	var notifier dating.Notifier
	if cfg.EnableWebSocket {
		hub = dating.NewHub()
		go hub.Run(ctx)
		notifier = hub
		log.Println("   ✅ Match notification hub started")
	}

	opts := dating.Options{
		AcceptanceThreshold: cfg.MatchAcceptanceThreshold,
		DiscoverLimit:       cfg.DiscoverLimit,
		CandidatePoolSize:   cfg.CandidatePoolSize,
		DiscoverCacheTTL:    cfg.DiscoverCacheTTL,
		ActiveUserDays:      cfg.ActiveUserDays,
	}
	matchRepo := dating.NewPostgresRepository(db)
	datingService := dating.NewService(matchRepo, profileRepo, dating.NewMatchingEngine(), picksCache, notifier, opts)
	datingHandler := dating.NewHandler(datingService, dating.NewAdminService(matchRepo, cfg.ActiveUserDays))
	log.Println("   ✅ Dating module initialized")

	if cfg.EnableScheduler {
		scheduler := dating.NewScheduler(datingService, cfg.FeedRefreshHour)
		go scheduler.Start(ctx)
		log.Printf("   ✅ Feed refresh scheduler started (%02d:00 daily)", cfg.FeedRefreshHour)
	}

	// 7. Setup routes
	log.Println("🛣️  Step 7: Setting up routes...")
	router := newRouter(db, authMiddleware, profileHandler, assessmentHandler, datingHandler, hub)

	// 8. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️  Shutdown signal received...")

	// stops the hub and the scheduler
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}

// connectPicksCache returns a Redis backed picks cache, or a no-op cache
// when Redis is not configured or unreachable
func connectPicksCache(redisURL string) dating.PicksCache {
	if redisURL == "" {
		log.Println("⚠️  Redis URL not configured, discover feeds will not be cached")
		return dating.NewNoopPicksCache()
	}

	client, err := database.NewRedisClientFromURL(redisURL)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), discover feeds will not be cached", err)
		return dating.NewNoopPicksCache()
	}

	log.Println("✅ Connected to Redis successfully")
	return dating.NewRedisPicksCache(client)
}

func newRouter(
	db *sqlx.DB,
	authMiddleware *auth.Middleware,
	profileHandler *profile.Handler,
	assessmentHandler *assessment.Handler,
	datingHandler *dating.Handler,
	hub *dating.Hub,
) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck(db)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Profile and assessment routes live on a chi sub-router
	chiRouter := chi.NewRouter()
	profile.RegisterRoutes(chiRouter, profileHandler, authMiddleware)
	assessment.RegisterRoutes(chiRouter, assessmentHandler, authMiddleware)
	router.PathPrefix("/api/v1/profile").Handler(chiRouter)
	router.PathPrefix("/api/v1/users/").Handler(chiRouter)
	router.PathPrefix("/api/v1/assessment").Handler(chiRouter)
	log.Println("   ✅ Profile and assessment routes registered")

	dating.RegisterRoutes(router, datingHandler, hub, authMiddleware)
	log.Println("   ✅ Dating routes registered")

	// Add middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	return router
}

// healthCheck returns server health status
func healthCheck(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Printf("⚠️  Health check: database ping failed: %v", err)
			status, code = "degraded", http.StatusServiceUnavailable
		}

		response := map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(response)
	}
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
