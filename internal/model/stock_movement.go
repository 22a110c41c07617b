package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement directions.
const (
	MovementEntrada = "entrada"
	MovementSaida   = "saida"
)

// StockMovement is an append-only audit record of one quantity change to a
// product's stock at a store. Rows are never updated or deleted.
type StockMovement struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int       `gorm:"not null"` // always >= 1; direction is MovementType
	MovementType string    `gorm:"type:varchar(10);not null"`
	Reason       string
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	Store   *Store   `gorm:"foreignKey:StoreID"`
}
