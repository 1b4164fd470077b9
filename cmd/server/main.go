package main

import (
	"log"
	"net/http"
	"os"

	_ "bookstore/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bookstore/internal/auth"
	"bookstore/internal/cache"
	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/handler"
	"bookstore/internal/repository"
	"bookstore/internal/router"
	"bookstore/internal/service"
)

// @title Bookstore API
// @version 1.0
// @description Practice REST backend for users and books with JWT login and a book purchase flow.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: failed to drop tables (may not exist): %v", err)
		}
	}

	// Schema auto-creation: local practice only, never production
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Services
	userService := service.NewUserService(userRepo, cacheClient, jwtService)
	bookService := service.NewBookService(bookRepo, userRepo, cacheClient)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)
	seedHandler := handler.NewSeedHandler(bookService)

	// Routes
	router.Register(e, cfg, userHandler, bookHandler, seedHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
