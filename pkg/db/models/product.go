package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// Product is a catalog entry. IDs are wide integers (bigserial) and must be
// serialized through safejson on every read path.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	SKU         string          `gorm:"column:sku;not null"`
	Name        string          `gorm:"column:name;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex:idx_products_slug"`
	Variant     enums.Variant   `gorm:"column:variant;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	ShowPrice   bool            `gorm:"column:show_price;not null;default:false"`
	Active      bool            `gorm:"column:active;not null;default:true"`
	Featured    bool            `gorm:"column:featured;not null;default:false"`
	Description *string         `gorm:"column:description"`
	// OrderIndex is assigned server-side at creation as the per-variant
	// maximum plus one. It orders catalog listings and is not globally unique.
	OrderIndex int            `gorm:"column:order_index;not null;default:0"`
	Images     []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage is a dependent child of Product; the whole image set is
// replaced when an update supplies an images array.
type ProductImage struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64   `gorm:"column:product_id;not null"`
	URL       string  `gorm:"column:url;not null"`
	Alt       *string `gorm:"column:alt"`
	Position  int     `gorm:"column:position;not null;default:0"`
}
