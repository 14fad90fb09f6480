package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/myshopee/backend/internal/advancer"
	"github.com/myshopee/backend/internal/aws"
	"github.com/myshopee/backend/internal/config"
	"github.com/myshopee/backend/internal/metrics"
	"github.com/myshopee/backend/internal/orders"
)

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

	store := orders.NewStore(clients.DynamoDB, cfg.OrdersTable)
	sink := metrics.NewCloudWatchSink(clients.CloudWatch, logger)

	adv := advancer.New(advancer.Config{
		Store:       store,
		Log:         logger,
		Metrics:     sink,
		Concurrency: cfg.AdvanceConcurrency,
	})
	transitions := advancer.Transitions(
		cfg.PlacedToProcessingAfter,
		cfg.ProcessingToShippedAfter,
		cfg.ShippedToDeliveredAfter,
	)

	// RUN_LOCAL=true runs a ticker-driven loop for development; otherwise each
	// scheduled EventBridge invocation drives exactly one cycle.
	if os.Getenv("RUN_LOCAL") == "true" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("running local advancer loop", zap.Duration("interval", cfg.CycleInterval))
		advancer.NewScheduler(adv, transitions, cfg.CycleInterval, logger).Run(ctx)
		return
	}

	lambda.Start(func(ctx context.Context, event events.CloudWatchEvent) error {
		adv.RunCycle(ctx, transitions)
		return nil
	})
}
