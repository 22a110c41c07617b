package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service order statuses.
const (
	OrderRealizando = "realizando"
	OrderPronto     = "pronto"
	OrderEntregue   = "entregue"
)

// Order is an optical service order (lenses being cut, frame assembly) with
// per-eye prescription measurements.
type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName  string     `gorm:"not null"`
	CustomerPhone string
	SellerID      *uuid.UUID `gorm:"type:uuid;index"`
	StoreID       uuid.UUID  `gorm:"type:uuid;not null;index"`

	// Right eye (OD)
	SphereRight   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CylinderRight *decimal.Decimal `gorm:"type:decimal(5,2)"`
	AxisRight     *int
	AdditionRight *decimal.Decimal `gorm:"type:decimal(5,2)"`
	DNPRight      *decimal.Decimal `gorm:"type:decimal(5,2);column:dnp_right"`
	HeightRight   *decimal.Decimal `gorm:"type:decimal(5,2)"`

	// Left eye (OE)
	SphereLeft   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CylinderLeft *decimal.Decimal `gorm:"type:decimal(5,2)"`
	AxisLeft     *int
	AdditionLeft *decimal.Decimal `gorm:"type:decimal(5,2)"`
	DNPLeft      *decimal.Decimal `gorm:"type:decimal(5,2);column:dnp_left"`
	HeightLeft   *decimal.Decimal `gorm:"type:decimal(5,2)"`

	LensDescription  string
	FrameDescription string
	Notes            string
	TotalPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Status    string `gorm:"type:varchar(20);not null;default:'realizando'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Seller *Seller `gorm:"foreignKey:SellerID"`
	Store  *Store  `gorm:"foreignKey:StoreID"`
}
