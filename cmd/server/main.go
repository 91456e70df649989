package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wordquest/internal/config"
	"wordquest/internal/database"
	"wordquest/internal/handlers"
	"wordquest/internal/hint"
	"wordquest/internal/mirror"
	"wordquest/internal/repository"
	"wordquest/internal/security"
	"wordquest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Println("Password reset email disabled (SES_FROM_EMAIL not set)")
	}

	hintGateway := hint.NewGateway(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.HintModel, cfg.HintTimeout)
	mirrors := mirror.NewStore()
	gameService := service.NewGameService(gameRepo, mirrors, hintGateway, cfg.WordsPerGame, cfg.PointsPerWord, cfg.HintTimeout)

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(20, time.Minute)
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	middleware := handlers.NewMiddleware(authService, rateLimiter, csrf, splitOrigins(cfg.AllowedOrigins))
	authHandler := handlers.NewAuthHandler(authService, gameService, emailService, csrf)
	gameHandler := handlers.NewGameHandler(gameService)
	oauthHandler := handlers.NewOAuthHandler(authService, cfg)

	// Setup routes
	mux := http.NewServeMux()

	// Static frontend
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticFilesPath)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// Account routes
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /csrf_token", middleware.RequireAuth(authHandler.CSRFToken))
	mux.HandleFunc("POST /forgot_password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /reset_password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google/start", oauthHandler.Start)
	mux.HandleFunc("GET /auth/google/callback", oauthHandler.Callback)

	// Game routes
	mux.HandleFunc("POST /start_game", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.StartGame)))
	mux.HandleFunc("POST /ask_hint", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.AskHint)))
	mux.HandleFunc("POST /submit_answer", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.SubmitAnswer)))
	mux.HandleFunc("POST /end_game", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.EndGame)))

	// Wrap with CORS and logging middleware
	handler := handlers.Logging(middleware.CORS(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions and reset tokens
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		}
	}
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
