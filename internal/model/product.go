package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog definition shared by all stores. Per-store on-hand
// quantity lives in StoreProduct.
//
// Code is a sequential, zero-padded identifier ("01", "02", …) assigned once
// at creation and immutable thereafter.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Brand       string
	ModelName   string          `gorm:"column:model"`
	Code        string          `gorm:"uniqueIndex;not null"`
	Description string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// StoreProduct holds the on-hand quantity of one product at one store.
// This is the only mutable stock-of-record: it changes exclusively through
// the sale transaction or an explicit stock movement.
type StoreProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_product"`
	Quantity  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Store   *Store   `gorm:"foreignKey:StoreID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}
