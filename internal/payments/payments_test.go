package payments

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type mockDynamo struct {
	mu    sync.Mutex
	items []map[string]types.AttributeValue
	err   error
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.items = append(m.items, params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	return nil, errors.New("not supported")
}
func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return nil, errors.New("not supported")
}
func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	return nil, errors.New("not supported")
}
func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return nil, errors.New("not supported")
}
func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	return nil, errors.New("not supported")
}

func TestCharge_Card(t *testing.T) {
	mock := &mockDynamo{}
	p := NewProcessor(mock, "payments")

	rec, err := p.Charge(context.Background(), "u1", MethodCard, "4111111111111111", 1108.9)
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if !strings.HasPrefix(rec.TransactionID, "TXN") {
		t.Fatalf("transaction id %q missing TXN prefix", rec.TransactionID)
	}
	if rec.Instrument != "**** **** **** 1111" {
		t.Fatalf("card number must be masked, got %q", rec.Instrument)
	}
	if len(mock.items) != 1 {
		t.Fatalf("expected 1 receipt persisted, got %d", len(mock.items))
	}
}

func TestCharge_UPI(t *testing.T) {
	mock := &mockDynamo{}
	p := NewProcessor(mock, "payments")

	rec, err := p.Charge(context.Background(), "u1", MethodUPI, "ravi@okbank", 250)
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if rec.Instrument != "ravi@okbank" {
		t.Fatalf("upi id should pass through, got %q", rec.Instrument)
	}
	if rec.Method != MethodUPI {
		t.Fatalf("method = %q", rec.Method)
	}
}

func TestCharge_StoreFailure(t *testing.T) {
	mock := &mockDynamo{err: errors.New("down")}
	p := NewProcessor(mock, "payments")

	if _, err := p.Charge(context.Background(), "u1", MethodCard, "4111111111111111", 10); err == nil {
		t.Fatal("expected error when receipt cannot be persisted")
	}
}

func TestDistinctTransactionIDs(t *testing.T) {
	mock := &mockDynamo{}
	p := NewProcessor(mock, "payments")

	a, _ := p.Charge(context.Background(), "u1", MethodUPI, "a@b", 1)
	b, _ := p.Charge(context.Background(), "u1", MethodUPI, "a@b", 1)
	if a.TransactionID == b.TransactionID {
		t.Fatal("transaction ids must be unique")
	}
}
