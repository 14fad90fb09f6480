package validation

// AddItemRequest is the payload for POST /cart/items. The client sends the
// product snapshot it got from the catalog.
type AddItemRequest struct {
	ProductID int     `json:"productId" validate:"required,min=1"`
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// UpdateQuantityRequest is the payload for PUT /cart/items/:productId.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// AddressRequest is the payload for PUT /address.
type AddressRequest struct {
	DoorNo   string `json:"doorNo" validate:"required"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode" validate:"required,numeric,len=6"`
}

// CheckoutRequest is the payload for POST /checkout. Which instrument fields
// are required depends on PaymentMethod; see the struct-level validation.
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=CARD UPI"`
	CardNumber    string `json:"cardNumber,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	CVV           string `json:"cvv,omitempty"`
	UPIID         string `json:"upiId,omitempty"`
}
