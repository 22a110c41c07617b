package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Till session status values.
const (
	TillOpen   = "aberto"
	TillClosed = "fechado"
)

// CashTillSession brackets the period a store's register is open.
// Invariants: at most one open session per store, at most one open session per
// opening user — both enforced inside the opening transaction and backed by
// partial unique indexes (see infra.applySchemaPatches).
//
// Single transition aberto → fechado; fechado is terminal.
type CashTillSession struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OpenedByID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClosedByID *uuid.UUID `gorm:"type:uuid"`

	OpenedAt time.Time
	ClosedAt *time.Time

	InitialAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// FinalAmountCalculated = InitialAmount + SUM(cash sales of this session).
	// Set exactly once, on close; Difference = reported − calculated.
	FinalAmountReported   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	FinalAmountCalculated *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Difference            *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Status string  `gorm:"type:varchar(10);not null;default:'aberto'"`
	Notes  *string

	Store    *Store `gorm:"foreignKey:StoreID"`
	OpenedBy *User  `gorm:"foreignKey:OpenedByID"`
	ClosedBy *User  `gorm:"foreignKey:ClosedByID"`
	Sales    []Sale `gorm:"foreignKey:CashTillSessionID"`
}

// CashFlow is an immutable ledger entry recording money in/out of a till.
// Entries are created once and never mutated — reversals append inverse rows.
type CashFlow struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CashTillSessionID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FlowType          string          `gorm:"type:varchar(10);not null"` // entrada | saida
	Description       string
	CreatedAt         time.Time
}
