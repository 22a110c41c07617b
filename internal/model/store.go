package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is one physical shop. It owns sellers, per-store stock, till sessions
// and sales.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;index"`
	Address   string    `gorm:"not null"`
	Phone     string
	Email     string
	ManagerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Manager *User `gorm:"foreignKey:ManagerID"`
}

// Category classifies products (armações, lentes, acessórios…).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }
