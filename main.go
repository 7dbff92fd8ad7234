package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lawrenceli7/spark-bytes/internal/config"
	"github.com/lawrenceli7/spark-bytes/internal/db"
	"github.com/lawrenceli7/spark-bytes/internal/handler"
	"github.com/lawrenceli7/spark-bytes/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	authService, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	userService := service.NewUserService(store, authService)
	eventService := service.NewEventService(store)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ","), true))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(handler.AuthMiddleware(authService))

	user := protected.Group("/user")
	user.GET("", userHandler.GetUsers)
	user.POST("/update/:userId", userHandler.UpdateUser)
	user.PATCH("/update/permissions/:userId", handler.RequireAdmin(), userHandler.UpdatePermissions)

	events := protected.Group("/events")
	events.GET("/active", eventHandler.GetActiveEvents)
	events.GET("/mine", eventHandler.GetUserEvents)
	events.GET("/:eventId", eventHandler.GetEventByID)
	events.POST("", eventHandler.CreateEvent)
	events.PUT("/:eventId", eventHandler.EditEvent)

	protected.GET("/locations", eventHandler.GetLocations)
	protected.GET("/tags", eventHandler.GetTags)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
