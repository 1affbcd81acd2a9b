package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// Quote is a customer-submitted pricing request. Quotes are append-only
// facts: created once at intake, never updated or deleted.
type Quote struct {
	ID            int64         `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName  string        `gorm:"column:customer_name;not null"`
	CustomerEmail string        `gorm:"column:customer_email;not null"`
	CustomerPhone *string       `gorm:"column:customer_phone"`
	Company       *string       `gorm:"column:company"`
	CNPJ          *string       `gorm:"column:cnpj"`
	Address       *string       `gorm:"column:address"`
	Variant       enums.Variant `gorm:"column:variant;not null"`
	Note          *string       `gorm:"column:note"`
	Items         []QuoteItem   `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
}

// QuoteItem is a line-item snapshot. Name and price are copied at intake so
// historical quotes stay accurate when the catalog changes. ProductID is a
// weak reference: no foreign-key constraint, the product may be deleted later.
type QuoteItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	QuoteID   int64           `gorm:"column:quote_id;not null;index:idx_quote_items_quote"`
	ProductID *int64          `gorm:"column:product_id"`
	SKU       string          `gorm:"column:sku;not null"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Qty       int             `gorm:"column:qty;not null"`
	Image     *string         `gorm:"column:image"`
	Position  int             `gorm:"column:position;not null"`
}
