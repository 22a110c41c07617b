package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered client, including the optical prescription data
// the shop needs to cut lenses (grau, DNP, adição per eye).
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;index"`
	Email     string
	Phone     string
	CPF       string     `gorm:"uniqueIndex;not null"`
	BirthDate *time.Time `gorm:"type:date"`
	Sex       string     `gorm:"type:varchar(1)"` // M | F | O
	Address   string
	City      string
	State     string `gorm:"type:varchar(2)"`
	ZipCode   string
	Notes     string

	// Optical prescription
	GrauOD       *string
	GrauOE       *string
	DNPOD        *string `gorm:"column:dnp_od"`
	DNPOE        *string `gorm:"column:dnp_oe"`
	Adicao       *string
	OpticalNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
