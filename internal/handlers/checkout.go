package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/myshopee/backend/internal/addresses"
	"github.com/myshopee/backend/internal/auth"
	"github.com/myshopee/backend/internal/aws"
	"github.com/myshopee/backend/internal/cart"
	"github.com/myshopee/backend/internal/orders"
	"github.com/myshopee/backend/internal/payments"
	"github.com/myshopee/backend/internal/validation"
)

const (
	flatShipping = 10.0
	taxRate      = 0.10
)

type checkoutDeps struct {
	carts     *cart.Store
	addresses *addresses.Store
	orders    *orders.Store
	payments  *payments.Processor
	publisher *aws.Publisher
	validate  *validatorv10.Validate
	log       *zap.Logger
}

// Checkout charges the cart total and creates one order per cart line item,
// each starting its lifecycle at "Order Placed" with a single timestamp
// entry. Orders are only ever created here; all later status mutation
// belongs to the advancer.
func registerCheckoutRoute(r *gin.RouterGroup, d checkoutDeps) {
	r.POST("/checkout", func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := auth.UserID(c)

		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
			return
		}

		addr, err := d.addresses.Get(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address_fetch_failed", "detail": err.Error()})
			return
		}
		if addr == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_address"})
			return
		}

		items, err := d.carts.List(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_fetch_failed", "detail": err.Error()})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart"})
			return
		}

		var subtotal float64
		for _, it := range items {
			subtotal += it.Price * float64(it.Quantity)
		}
		total := subtotal + flatShipping + subtotal*taxRate

		instrument := req.CardNumber
		if req.PaymentMethod == payments.MethodUPI {
			instrument = req.UPIID
		}
		receipt, err := d.payments.Charge(ctx, userID, req.PaymentMethod, instrument, total)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment_failed", "detail": err.Error()})
			return
		}

		now := time.Now().UTC()
		iso := now.Format(time.RFC3339)
		orderIDs := make([]string, 0, len(items))
		for _, it := range items {
			order := orders.Order{
				UserID:  userID,
				OrderID: newOrderID(),
				Status:  orders.StatusPlaced,
				StatusTimestamps: map[string]string{
					orders.StatusPlaced: iso,
				},
				OrderDate:  iso,
				UpdateDate: iso,
				ProductID:  it.ProductID,
				Title:      it.Title,
				Price:      it.Price,
				Quantity:   it.Quantity,
				Thumbnail:  it.Thumbnail,
				Address: orders.Address{
					DoorNo:   addr.DoorNo,
					Street:   addr.Street,
					City:     addr.City,
					District: addr.District,
					State:    addr.State,
					Pincode:  addr.Pincode,
				},
				PaymentMode:   req.PaymentMethod,
				TransactionID: receipt.TransactionID,
			}
			if err := d.orders.Create(ctx, order); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":         "order_create_failed",
					"detail":        err.Error(),
					"transactionId": receipt.TransactionID,
					"orderIds":      orderIDs,
				})
				return
			}
			orderIDs = append(orderIDs, order.OrderID)

			// notification is best-effort; the order is already placed
			payload, _ := json.Marshal(map[string]string{
				"type":     "order_placed",
				"user_id":  userID,
				"order_id": order.OrderID,
				"title":    order.Title,
			})
			attrs := map[string]string{
				"order_id":       order.OrderID,
				"correlation_id": c.GetHeader("X-Request-Id"),
			}
			if err := d.publisher.SendOrderEvent(ctx, string(payload), attrs); err != nil {
				d.log.Warn("order event publish failed",
					zap.String("order_id", order.OrderID),
					zap.Error(err))
			}
		}

		if err := d.carts.Clear(ctx, userID); err != nil {
			d.log.Warn("cart clear failed after checkout",
				zap.String("user_id", userID),
				zap.Error(err))
		}

		c.JSON(http.StatusCreated, gin.H{
			"transactionId": receipt.TransactionID,
			"orderIds":      orderIDs,
			"amount":        total,
		})
	})
}

func newOrderID() string {
	return "OD" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
