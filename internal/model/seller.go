package model

import (
	"time"

	"github.com/google/uuid"
)

// Seller is a salesperson attached to one store. Sales reference the seller
// for commission and reporting purposes.
type Seller struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;index"`
	Email     string
	Phone     string
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time

	Store *Store `gorm:"foreignKey:StoreID"`
}
