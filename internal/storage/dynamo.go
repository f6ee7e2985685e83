package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-cart-engine/internal/aws"
	"github.com/imrishuroy/go-cart-engine/internal/cart"
)

// schemaVersion tags every persisted cart record. A record with a different
// version is treated as unreadable rather than misread.
const schemaVersion = 1

// itemRecord is the persisted shape of one cart line. Money is stored as
// decimal strings so no precision is lost on the round trip.
type itemRecord struct {
	ProductID       string `dynamodbav:"product_id"`
	Name            string `dynamodbav:"name,omitempty"`
	Image           string `dynamodbav:"image,omitempty"`
	UnitPrice       string `dynamodbav:"unit_price"`
	DiscountPercent string `dynamodbav:"discount_percent"`
	Quantity        int    `dynamodbav:"quantity"`
}

// cartRecord is the item stored in the carts DynamoDB table.
type cartRecord struct {
	CartID        string       `dynamodbav:"cart_id"` // PK
	SchemaVersion int          `dynamodbav:"schema_version"`
	Items         []itemRecord `dynamodbav:"items"`
	UpdatedAt     time.Time    `dynamodbav:"updated_at"`
}

// DynamoStore persists carts in a DynamoDB table, one item per cart id.
// It implements cart.Store.
type DynamoStore struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewDynamoStore creates a store bound to tableName.
func NewDynamoStore(client aws.DynamoDBAPI, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Load fetches the persisted cart for cartID. Returns cart.ErrNotFound when
// no record exists (or the table itself is missing), cart.ErrCorrupt when the
// record cannot be decoded.
func (s *DynamoStore) Load(ctx context.Context, cartID string) ([]cart.LineItem, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"cart_id": &types.AttributeValueMemberS{Value: cartID},
		},
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ResourceNotFoundException" {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, cart.ErrNotFound
	}

	var rec cartRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal cart: %v", cart.ErrCorrupt, err)
	}
	if rec.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("%w: schema version %d", cart.ErrCorrupt, rec.SchemaVersion)
	}

	items := make([]cart.LineItem, 0, len(rec.Items))
	for _, ir := range rec.Items {
		li, err := ir.toLineItem()
		if err != nil {
			return nil, fmt.Errorf("%w: item %s: %v", cart.ErrCorrupt, ir.ProductID, err)
		}
		items = append(items, li)
	}
	return items, nil
}

// Save writes the full line-item list for cartID, replacing any prior record.
func (s *DynamoStore) Save(ctx context.Context, cartID string, items []cart.LineItem) error {
	rec := cartRecord{
		CartID:        cartID,
		SchemaVersion: schemaVersion,
		Items:         make([]itemRecord, 0, len(items)),
		UpdatedAt:     s.nowFunc(),
	}
	for _, li := range items {
		rec.Items = append(rec.Items, toItemRecord(li))
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func toItemRecord(li cart.LineItem) itemRecord {
	return itemRecord{
		ProductID:       li.ProductID,
		Name:            li.Name,
		Image:           li.Image,
		UnitPrice:       li.UnitPrice.String(),
		DiscountPercent: li.DiscountPercent.String(),
		Quantity:        li.Quantity,
	}
}

func (ir itemRecord) toLineItem() (cart.LineItem, error) {
	price, err := decimal.NewFromString(ir.UnitPrice)
	if err != nil {
		return cart.LineItem{}, fmt.Errorf("unit_price %q: %v", ir.UnitPrice, err)
	}
	disc, err := decimal.NewFromString(ir.DiscountPercent)
	if err != nil {
		return cart.LineItem{}, fmt.Errorf("discount_percent %q: %v", ir.DiscountPercent, err)
	}
	if ir.Quantity < 1 {
		return cart.LineItem{}, fmt.Errorf("quantity %d", ir.Quantity)
	}
	return cart.LineItem{
		ProductID:       ir.ProductID,
		Name:            ir.Name,
		Image:           ir.Image,
		UnitPrice:       price,
		DiscountPercent: disc,
		Quantity:        ir.Quantity,
	}, nil
}
