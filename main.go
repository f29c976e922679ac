package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"social-media-service/internal/db"
	"social-media-service/internal/handlers"
	"social-media-service/internal/middleware"
	"social-media-service/internal/observability"
	"social-media-service/internal/rabbitmq"
	"social-media-service/internal/repositories"
	"social-media-service/internal/services"
	"social-media-service/internal/telemetry"
	"social-media-service/internal/ws"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), "social-media-service", os.Getenv("OTLP_ENDPOINT"))
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	publisher := rabbitmq.NewPublisher(os.Getenv("AMQP_URL"), getEnv("EVENTS_EXCHANGE", "social.events"))
	defer publisher.Close()
	log.Printf("event publisher mode=%s", rabbitmq.PublisherMode(publisher))

	emitter := telemetry.NewEventEmitter(publisher, "social-media-service", getEnv("SERVICE_ENV", "development"))

	accountRepo := repositories.NewAccountRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	accountService := services.NewAccountService(accountRepo)
	messageService := services.NewMessageService(messageRepo)

	hub := ws.NewHub()

	accountHandler := handlers.NewAccountHandler(accountService, emitter)
	messageHandler := handlers.NewMessageHandler(messageService, hub, emitter)
	feedWS := ws.NewFeedWebSocketHandler(hub, accountRepo)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware("social-media-service"))

	router.POST("/register", accountHandler.Register)
	router.POST("/login", accountHandler.Login)
	router.POST("/messages", messageHandler.Post)
	router.GET("/messages", messageHandler.List)
	router.GET("/messages/:message_id", messageHandler.GetByID)
	router.DELETE("/messages/:message_id", messageHandler.Delete)
	router.PATCH("/messages/:message_id", messageHandler.Update)
	router.GET("/accounts/:account_id/messages", messageHandler.ListByAccount)

	router.GET("/ws/messages", feedWS.HandleFirehose)
	router.GET("/ws/accounts/:account_id/messages", feedWS.HandleAccount)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, emitter, os.Getenv("DEBUG_ROUTES") == "true")

	port := getEnv("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
