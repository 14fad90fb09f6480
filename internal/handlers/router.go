package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/myshopee/backend/internal/addresses"
	"github.com/myshopee/backend/internal/auth"
	"github.com/myshopee/backend/internal/aws"
	"github.com/myshopee/backend/internal/cart"
	"github.com/myshopee/backend/internal/catalog"
	"github.com/myshopee/backend/internal/orders"
	"github.com/myshopee/backend/internal/payments"
	"github.com/myshopee/backend/internal/validation"
)

// HandlerConfig groups dependencies for the storefront API.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI
	Catalog        *catalog.Client

	OrdersTable    string
	CartsTable     string
	AddressesTable string
	PaymentsTable  string
	QueueURL       string
	JWTSecret      string

	Log *zap.Logger
}

// Register wires every storefront route onto r. Product routes are public;
// everything touching user state sits behind the auth middleware.
func Register(r *gin.Engine, cfg HandlerConfig) {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	v := validation.New()
	cartStore := cart.NewStore(cfg.DynamoDBClient, cfg.CartsTable)
	addressStore := addresses.NewStore(cfg.DynamoDBClient, cfg.AddressesTable)
	orderStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	paymentProcessor := payments.NewProcessor(cfg.DynamoDBClient, cfg.PaymentsTable)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerProductRoutes(r, cfg.Catalog)

	authed := r.Group("/", auth.Middleware(cfg.JWTSecret))
	registerCartRoutes(authed, cartStore, v)
	registerAddressRoutes(authed, addressStore, v)
	registerOrderRoutes(authed, orderStore)
	registerCheckoutRoute(authed, checkoutDeps{
		carts:     cartStore,
		addresses: addressStore,
		orders:    orderStore,
		payments:  paymentProcessor,
		publisher: publisher,
		validate:  v,
		log:       cfg.Log,
	})
}
