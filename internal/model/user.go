package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values for User.Role.
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
)

// User stores system users with role-based access.
// Admins operate across all stores; gerentes are bound to a single store.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(10);not null;default:'gerente'"`
	// StoreID restricts a gerente to a specific store; nil for admins.
	StoreID   *uuid.UUID `gorm:"type:uuid;index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Store *Store `gorm:"foreignKey:StoreID"`
}
