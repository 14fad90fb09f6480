package orders

// Order lifecycle statuses, in transition order.
const (
	StatusPlaced     = "Order Placed"
	StatusProcessing = "Order Processing"
	StatusShipped    = "Order Shipped"
	StatusDelivered  = "Order Delivered" // terminal
)

// Lifecycle is the ordered status progression.
var Lifecycle = []string{StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered}

// Address is the delivery address snapshot frozen into the order at checkout.
type Address struct {
	DoorNo   string `dynamodbav:"door_no" json:"doorNo"`
	Street   string `dynamodbav:"street" json:"street"`
	City     string `dynamodbav:"city" json:"city"`
	District string `dynamodbav:"district" json:"district"`
	State    string `dynamodbav:"state" json:"state"`
	Pincode  string `dynamodbav:"pincode" json:"pincode"`
}

// Order represents one purchased line item stored in the orders table,
// keyed by (user_id, order_id). Timestamps are RFC3339 strings.
//
// StatusTimestamps holds one entry per status the order has passed through;
// entries are appended by the advancer and never rewritten. An order is
// created with status "Order Placed" and exactly one entry, and is never
// mutated again once it reaches "Order Delivered".
type Order struct {
	UserID           string            `dynamodbav:"user_id" json:"userId"`   // PK
	OrderID          string            `dynamodbav:"order_id" json:"orderId"` // SK
	Status           string            `dynamodbav:"status" json:"status"`
	StatusTimestamps map[string]string `dynamodbav:"status_timestamps" json:"statusTimestamps"`
	OrderDate        string            `dynamodbav:"order_date" json:"orderDate"`
	UpdateDate       string            `dynamodbav:"update_date" json:"updateDate"`

	// Line-item snapshot, immutable after creation.
	ProductID int     `dynamodbav:"product_id" json:"productId"`
	Title     string  `dynamodbav:"title" json:"title"`
	Price     float64 `dynamodbav:"price" json:"price"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	Thumbnail string  `dynamodbav:"thumbnail,omitempty" json:"thumbnail,omitempty"`

	Address       Address `dynamodbav:"address" json:"address"`
	PaymentMode   string  `dynamodbav:"payment_mode" json:"paymentMode"`
	TransactionID string  `dynamodbav:"transaction_id" json:"transactionId"`
}

// NextStatus returns the status following s in the lifecycle, or "" when s is
// terminal or unknown.
func NextStatus(s string) string {
	for i, st := range Lifecycle {
		if st == s && i+1 < len(Lifecycle) {
			return Lifecycle[i+1]
		}
	}
	return ""
}
