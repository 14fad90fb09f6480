package cart

// Item is one product snapshot in a user's cart, keyed by (user_id, product_id).
// Re-adding an existing product overwrites the snapshot with quantity 1.
type Item struct {
	UserID    string  `dynamodbav:"user_id" json:"userId"`
	ProductID int     `dynamodbav:"product_id" json:"productId"`
	Title     string  `dynamodbav:"title" json:"title"`
	Price     float64 `dynamodbav:"price" json:"price"`
	Thumbnail string  `dynamodbav:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	AddedAt   string  `dynamodbav:"added_at" json:"addedAt"`
	UpdatedAt string  `dynamodbav:"updated_at" json:"updatedAt"`
}
