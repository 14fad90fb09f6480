package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/myshopee/backend/internal/aws"
	"github.com/myshopee/backend/internal/catalog"
	"github.com/myshopee/backend/internal/config"
	"github.com/myshopee/backend/internal/handlers"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	handlers.Register(r, cfg)
	return r
}

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	r := setupRouter(handlers.HandlerConfig{
		DynamoDBClient: clients.DynamoDB,
		SQSClient:      clients.SQS,
		Catalog:        catalog.New(cfg.CatalogBaseURL),
		OrdersTable:    cfg.OrdersTable,
		CartsTable:     cfg.CartsTable,
		AddressesTable: cfg.AddressesTable,
		PaymentsTable:  cfg.PaymentsTable,
		QueueURL:       cfg.OrderEventsQueueURL,
		JWTSecret:      cfg.JWTSecret,
		Log:            logger,
	})

	// RUN_LOCAL=true serves plain HTTP for development; otherwise the router
	// sits behind API Gateway through the gin adapter.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("running local server", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			logger.Fatal("local server exited", zap.Error(err))
		}
		return
	}

	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
