package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/myshopee/backend/internal/aws"
)

// Payment methods accepted at checkout.
const (
	MethodCard = "CARD"
	MethodUPI  = "UPI"
)

// Receipt is the persisted record of one simulated payment.
type Receipt struct {
	UserID        string  `dynamodbav:"user_id" json:"userId"`               // PK
	TransactionID string  `dynamodbav:"transaction_id" json:"transactionId"` // SK
	Method        string  `dynamodbav:"method" json:"method"`
	Amount        float64 `dynamodbav:"amount" json:"amount"`
	Instrument    string  `dynamodbav:"instrument" json:"instrument"` // masked card or UPI id
	Date          string  `dynamodbav:"date" json:"date"`
}

// Processor simulates a payment gateway: it always approves, mints a
// transaction id and persists the receipt.
type Processor struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	newTxnID  func() string
}

// NewProcessor creates a Processor writing receipts to tableName.
func NewProcessor(client aws.DynamoDBAPI, tableName string) *Processor {
	return &Processor{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
		newTxnID: func() string {
			return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
		},
	}
}

// Charge approves the payment and stores a receipt. cardNumber is only ever
// persisted masked; for UPI the instrument is the UPI id itself.
func (p *Processor) Charge(ctx context.Context, userID, method, instrument string, amount float64) (*Receipt, error) {
	if method == MethodCard {
		instrument = maskCard(instrument)
	}
	rec := Receipt{
		UserID:        userID,
		TransactionID: p.newTxnID(),
		Method:        method,
		Amount:        amount,
		Instrument:    instrument,
		Date:          p.nowFunc().UTC().Format(time.RFC3339),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal receipt: %w", err)
	}
	_, err = p.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &p.tableName,
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("put receipt: %w", err)
	}
	return &rec, nil
}

func maskCard(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return "**** **** **** " + number[len(number)-4:]
}
