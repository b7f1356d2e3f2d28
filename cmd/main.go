package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biblioteca/backend/internal/auth"
	"github.com/biblioteca/backend/internal/config"
	"github.com/biblioteca/backend/internal/handlers"
	"github.com/biblioteca/backend/internal/logger"
	"github.com/biblioteca/backend/internal/middlewares"
	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/repositories"
	"github.com/biblioteca/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting library catalog service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize password hasher
	hasher := auth.NewHasher()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTypeRepo := repositories.NewUserTypeRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	authorRepo := repositories.NewAuthorRepository(db)
	bookRepo := repositories.NewBookRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, hasher, logger.Logger)
	userService := services.NewUserService(userRepo, userTypeRepo, hasher, logger.Logger)
	authorService := services.NewAuthorService(authorRepo, logger.Logger)
	bookService := services.NewBookService(bookRepo, logger.Logger)

	// Seed the fixed user types and the initial admin account
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userService.Seed(seedCtx, cfg.Auth.AdminPassword); err != nil {
		cancelSeed()
		logger.Logger.Fatal("Failed to seed initial data", zap.Error(err))
	}
	cancelSeed()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	authorHandler := handlers.NewAuthorHandler(authorService, logger.Logger)
	bookHandler := handlers.NewBookHandler(bookService, logger.Logger)
	sessionCleaningHandler := handlers.NewSessionCleaningHandler(authService, logger.Logger, cfg.Auth.SessionTTL)

	// Initialize auth middleware
	sessionMiddleware := auth.SessionMiddleware(authService)
	adminOnly := auth.RequireUserType(models.UserTypeAdmin)
	apiKeyMiddleware := auth.APIKeyMiddleware(cfg.Auth.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Register auth routes
		authHandler.RegisterRoutes(r, sessionMiddleware)
		// Register user management routes (admin only)
		userHandler.RegisterRoutes(r, sessionMiddleware, adminOnly)
		// Register catalog routes
		authorHandler.RegisterRoutes(r, sessionMiddleware)
		bookHandler.RegisterRoutes(r, sessionMiddleware)
		// Register session cleaning routes with API key middleware
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			sessionCleaningHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "catalog_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
