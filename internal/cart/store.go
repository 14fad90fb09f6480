package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/myshopee/backend/internal/aws"
)

// ErrItemNotFound indicates a quantity update targeted a product that is not
// in the cart.
var ErrItemNotFound = errors.New("cart item not found")

// Store encapsulates operations on the carts table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new cart Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Add puts a product snapshot into the cart with quantity 1, overwriting any
// existing entry for the same product.
func (s *Store) Add(ctx context.Context, item Item) error {
	now := s.nowFunc().UTC().Format(time.RFC3339)
	item.Quantity = 1
	item.AddedAt = now
	item.UpdatedAt = now

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal cart item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put cart item: %w", err)
	}
	return nil
}

// List returns everything in the user's cart.
func (s *Store) List(ctx context.Context, userID string) ([]Item, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:                 &s.tableName,
		KeyConditionExpression:    awsString("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":uid": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	var items []Item
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return items, nil
}

// SetQuantity updates the quantity of one cart line. The write is conditional
// on the item existing so a stale client gets ErrItemNotFound, not an upsert.
func (s *Store) SetQuantity(ctx context.Context, userID string, productID, quantity int) error {
	now := s.nowFunc().UTC().Format(time.RFC3339)
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.tableName,
		Key:              itemKey(userID, productID),
		UpdateExpression: awsString("SET quantity = :q, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q":  &types.AttributeValueMemberN{Value: strconv.Itoa(quantity)},
			":ua": &types.AttributeValueMemberS{Value: now},
		},
		ConditionExpression: awsString("attribute_exists(product_id)"),
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrItemNotFound
		}
		return fmt.Errorf("update cart quantity: %w", err)
	}
	return nil
}

// Remove deletes one product from the cart. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, userID string, productID int) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key:       itemKey(userID, productID),
	})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// Clear removes every item in the user's cart.
func (s *Store) Clear(ctx context.Context, userID string) error {
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := s.Remove(ctx, userID, it.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func itemKey(userID string, productID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id":    &types.AttributeValueMemberS{Value: userID},
		"product_id": &types.AttributeValueMemberN{Value: strconv.Itoa(productID)},
	}
}

func awsString(s string) *string { return &s }
