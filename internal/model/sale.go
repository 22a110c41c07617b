package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentDinheiro      = "dinheiro"
	PaymentCartaoCredito = "cartao_credito"
	PaymentCartaoDebito  = "cartao_debito"
	PaymentPix           = "pix"
)

// Sale is a completed point-of-sale transaction. Immutable after creation:
// TotalAmount always equals the sum of its items' TotalPrice.
type Sale struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CashTillSessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID        *uuid.UUID `gorm:"type:uuid;index"`

	CustomerName  string `gorm:"not null"`
	CustomerEmail string
	CustomerPhone string

	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentMethod string          `gorm:"type:varchar(15);not null;default:'dinheiro'"`
	SaleDate      time.Time
	CreatedAt     time.Time

	Store    *Store           `gorm:"foreignKey:StoreID"`
	Session  *CashTillSession `gorm:"foreignKey:CashTillSessionID"`
	Seller   *Seller          `gorm:"foreignKey:SellerID"`
	Customer *Customer        `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem       `gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale. UnitPrice snapshots the product price at
// sale time; TotalPrice = UnitPrice × Quantity.
type SaleItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
