package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPaymentType is assumed whenever a bill carries no payment type.
const DefaultPaymentType = "cash"

// Bill is one customer transaction. Bills are never edited after creation,
// except that deleting a table clears the table columns.
type Bill struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	TotalAmount Amount     `json:"total_amount"`
	PaymentType *string    `json:"payment_type"`
	TableID     *uuid.UUID `json:"table_id"`
	TableName   *string    `json:"table_name"`
	Section     *string    `json:"section"`
	Items       []BillItem `json:"items,omitempty"`
}

// PaymentTypeOrDefault returns the payment type, falling back to cash.
func (b Bill) PaymentTypeOrDefault() string {
	if b.PaymentType == nil || *b.PaymentType == "" {
		return DefaultPaymentType
	}
	return *b.PaymentType
}

// BillItem is one line of a bill. Price is the price at the time of sale.
type BillItem struct {
	ID         uuid.UUID `json:"id"`
	BillID     uuid.UUID `json:"bill_id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Price      Amount    `json:"price"`
}

// BillItemDetail is a bill line joined with its bill and menu item.
type BillItemDetail struct {
	BillID        uuid.UUID `json:"bill_id"`
	BillCreatedAt time.Time `json:"bill_created_at"`
	MenuItemID    uuid.UUID `json:"menu_item_id"`
	MenuItemName  string    `json:"menu_item_name"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	Price         Amount    `json:"price"`
}

type CreateBillItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
}

type CreateBillRequest struct {
	PaymentType string                  `json:"payment_type" validate:"omitempty,max=32"`
	TableID     *uuid.UUID              `json:"table_id"`
	Items       []CreateBillItemRequest `json:"items" validate:"required,min=1,dive"`
}
