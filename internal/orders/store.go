package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/myshopee/backend/internal/aws"
)

// ErrStatusMismatch indicates the order was not in the expected status when a
// transition was attempted (already advanced, or never in that status).
var ErrStatusMismatch = errors.New("order status mismatch/conditional failed")

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// Create persists a new order. Checkout is the only caller; the record must
// arrive with status "Order Placed" and a single status_timestamps entry.
func (s *Store) Create(ctx context.Context, order Order) error {
	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(order_id)"),
	})
	if err != nil {
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// Get fetches one order. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, userID, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       orderKey(userID, orderID),
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// ListByUser returns all of one user's orders.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:                 &s.tableName,
		KeyConditionExpression:    awsString("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":uid": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	var list []Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &list); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	return list, nil
}

// ListByStatus scans the whole table across users, filtered server-side to
// records currently in the given status. Pagination is followed to the end so
// a pass sees every candidate order.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]Order, error) {
	var (
		list     []Order
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:                 &s.tableName,
			FilterExpression:          awsString("#s = :status"),
			ExpressionAttributeNames:  map[string]string{"#s": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: status}},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		var page []Order
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal orders page: %w", err)
		}
		list = append(list, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return list, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// AdvanceStatus transitions one order from -> to, appending the new status
// timestamp and bumping update_date in a single merge update. The write is
// conditional on the order still being in the from status, so a redundant
// attempt (overlapping cycle, duplicate pass) fails with ErrStatusMismatch
// instead of rewriting state.
func (s *Store) AdvanceStatus(ctx context.Context, userID, orderID, from, to string, now time.Time) error {
	ts := now.UTC().Format(time.RFC3339)
	input := &dyn.UpdateItemInput{
		TableName:        &s.tableName,
		Key:              orderKey(userID, orderID),
		UpdateExpression: awsString("SET #s = :to, update_date = :ua, status_timestamps.#to = :ts"),
		ExpressionAttributeNames: map[string]string{
			"#s":  "status",
			"#to": to,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":   &types.AttributeValueMemberS{Value: to},
			":ua":   &types.AttributeValueMemberS{Value: ts},
			":ts":   &types.AttributeValueMemberS{Value: ts},
			":from": &types.AttributeValueMemberS{Value: from},
		},
		ConditionExpression: awsString("#s = :from"),
	}

	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrStatusMismatch
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func orderKey(userID, orderID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id":  &types.AttributeValueMemberS{Value: userID},
		"order_id": &types.AttributeValueMemberS{Value: orderID},
	}
}

func awsString(s string) *string { return &s }
