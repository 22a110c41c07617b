package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier (fornecedor) provides frames, lenses and accessories.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;index"`
	CNPJ      string
	CPF       string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string `gorm:"type:varchar(2)"`
	ZipCode   string
	Notes     string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
