package addresses

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/myshopee/backend/internal/aws"
)

// Address is the single delivery address kept per user.
type Address struct {
	UserID    string `dynamodbav:"user_id" json:"userId"`
	DoorNo    string `dynamodbav:"door_no" json:"doorNo"`
	Street    string `dynamodbav:"street" json:"street"`
	City      string `dynamodbav:"city" json:"city"`
	District  string `dynamodbav:"district" json:"district"`
	State     string `dynamodbav:"state" json:"state"`
	Pincode   string `dynamodbav:"pincode" json:"pincode"`
	UpdatedAt string `dynamodbav:"updated_at" json:"updatedAt"`
}

// Store encapsulates operations on the addresses table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new address Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Put saves the user's address, replacing any previous one.
func (s *Store) Put(ctx context.Context, addr Address) error {
	addr.UpdatedAt = s.nowFunc().UTC().Format(time.RFC3339)
	item, err := attributevalue.MarshalMap(addr)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put address: %w", err)
	}
	return nil
}

// Get fetches the user's address. Returns (nil, nil) when none is saved.
func (s *Store) Get(ctx context.Context, userID string) (*Address, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       addressKey(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var addr Address
	if err := attributevalue.UnmarshalMap(out.Item, &addr); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}
	return &addr, nil
}

// Delete removes the user's address.
func (s *Store) Delete(ctx context.Context, userID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key:       addressKey(userID),
	})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func addressKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
	}
}
