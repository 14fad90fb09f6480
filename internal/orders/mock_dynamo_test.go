package orders

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a minimal in-memory stand-in for the orders table. It knows
// only the expressions this package issues; anything else errors loudly.
// Items are keyed by "user_id|order_id".
type mockDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue

	// updateErrFor injects a failure for a given composite key.
	updateErrFor map[string]error
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		items:        map[string]map[string]types.AttributeValue{},
		updateErrFor: map[string]error{},
	}
}

func compositeKey(attrs map[string]types.AttributeValue) (string, error) {
	u, ok := attrs["user_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing user_id")
	}
	o, ok := attrs["order_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing order_id")
	}
	return u.Value + "|" + o.Value, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := compositeKey(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_id)" {
		if _, exists := m.items[k]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := compositeKey(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.items[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := compositeKey(params.Key)
	if err != nil {
		return nil, err
	}
	delete(m.items, k)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := params.ExpressionAttributeValues[":uid"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("query: missing :uid")
	}
	out := &dyn.QueryOutput{}
	for k, item := range m.items {
		if strings.HasPrefix(k, uid.Value+"|") {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &dyn.ScanOutput{}
	var want string
	if params.FilterExpression != nil {
		if *params.FilterExpression != "#s = :status" {
			return nil, errors.New("scan: unsupported filter expression")
		}
		want = params.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value
	}
	for _, item := range m.items {
		if want != "" {
			st, ok := item["status"].(*types.AttributeValueMemberS)
			if !ok || st.Value != want {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := compositeKey(params.Key)
	if err != nil {
		return nil, err
	}
	if injected, ok := m.updateErrFor[k]; ok {
		return nil, injected
	}
	item, exists := m.items[k]
	if !exists {
		// condition on a missing item fails the same way a mismatch does
		return nil, &types.ConditionalCheckFailedException{}
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "#s = :from" {
		curr, ok := item["status"].(*types.AttributeValueMemberS)
		expected := params.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value
		if !ok || curr.Value != expected {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	// apply: SET #s = :to, update_date = :ua, status_timestamps.#to = :ts
	if v, ok := params.ExpressionAttributeValues[":to"]; ok {
		item["status"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["update_date"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ts"]; ok {
		label := params.ExpressionAttributeNames["#to"]
		tsAttr, ok := item["status_timestamps"].(*types.AttributeValueMemberM)
		if !ok {
			tsAttr = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{}}
		}
		tsAttr.Value[label] = v
		item["status_timestamps"] = tsAttr
	}
	m.items[k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}
