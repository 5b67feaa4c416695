package main

import (
	"log"
	"time"

	"github.com/coe-app/task-api/internal/config"
	"github.com/coe-app/task-api/internal/database"
	"github.com/coe-app/task-api/internal/handlers"
	"github.com/coe-app/task-api/internal/middleware"
	"github.com/coe-app/task-api/internal/repository"
	"github.com/coe-app/task-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	tokenService := services.NewTokenService(
		cfg.JWTSecretKey,
		time.Duration(cfg.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenMinutes)*time.Minute,
	)
	userService := services.NewUserService(userRepo, tokenService)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokenService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokenService, userService)

	// User routes
	user := r.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.POST("/token/refresh", userHandler.Refresh)
		user.POST("/logout", userHandler.Logout)
		user.GET("/me", requireAuth, userHandler.GetCurrentUser)
		user.PUT("/:id", requireAuth, userHandler.UpdateUser)
		user.DELETE("/:id", requireAuth, userHandler.DeleteUser)
	}

	// Task routes (all protected)
	task := r.Group("/task")
	task.Use(requireAuth)
	{
		task.POST("/add", taskHandler.CreateTask)
		task.GET("/list", taskHandler.ListTasks)
		task.GET("/:id", taskHandler.GetTask)
		task.PUT("/:id", taskHandler.UpdateTask)
		task.DELETE("/:id", taskHandler.DeleteTask)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
