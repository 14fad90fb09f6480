package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// mockDynamo backs every store at once: table -> composite key -> item.
// The key is user_id plus whichever sort attribute the item carries.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

var sortAttrs = []string{"order_id", "product_id", "transaction_id"}

func itemKey(attrs map[string]types.AttributeValue) (string, error) {
	u, ok := attrs["user_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing user_id")
	}
	k := u.Value
	for _, name := range sortAttrs {
		switch v := attrs[name].(type) {
		case *types.AttributeValueMemberS:
			return k + "|" + v.Value, nil
		case *types.AttributeValueMemberN:
			return k + "|" + v.Value, nil
		}
	}
	return k, nil
}

func (m *mockDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if _, ok := m.tables[name]; !ok {
		m.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return m.tables[name]
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.table(*params.TableName)
	k, err := itemKey(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_id)" {
		if _, exists := tbl[k]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	tbl[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.table(*params.TableName)
	k, err := itemKey(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := tbl[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.table(*params.TableName)
	k, err := itemKey(params.Key)
	if err != nil {
		return nil, err
	}
	delete(tbl, k)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.table(*params.TableName)
	uid, ok := params.ExpressionAttributeValues[":uid"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("query: missing :uid")
	}
	out := &dyn.QueryOutput{}
	for k, item := range tbl {
		if k == uid.Value || strings.HasPrefix(k, uid.Value+"|") {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.table(*params.TableName)
	out := &dyn.ScanOutput{}
	var want string
	if params.FilterExpression != nil {
		want = params.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value
	}
	for _, item := range tbl {
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
	tbl := m.table(*params.TableName)
	k, err := itemKey(params.Key)
	if err != nil {
		return nil, err
	}
	item, exists := tbl[k]
	if !exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "#s = :from" {
		curr, ok := item["status"].(*types.AttributeValueMemberS)
		expected := params.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value
		if !ok || curr.Value != expected {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	if v, ok := params.ExpressionAttributeValues[":to"]; ok {
		item["status"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":q"]; ok {
		item["quantity"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["update_date"] = v
		item["updated_at"] = v
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
	tbl[k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

// mockSQS records published order events.
type mockSQS struct {
	mu   sync.Mutex
	sent []*sqs.SendMessageInput
	err  error
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, params)
	return &sqs.SendMessageOutput{}, nil
}
