package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee positions (cargo).
const (
	CargoVendedor = "vendedor"
	CargoGerente  = "gerente"
	CargoOptico   = "optico"
	CargoAuxiliar = "auxiliar"
	CargoOutro    = "outro"
)

// Employee is a staff member on the payroll of one store.
type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null;index"`
	CPF           string    `gorm:"uniqueIndex;not null"`
	Email         string
	Phone         string
	Cargo         string          `gorm:"type:varchar(20);not null"`
	HiredAt       time.Time       `gorm:"type:date;not null"`
	DismissedAt   *time.Time      `gorm:"type:date"`
	BaseSalary    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CommissionPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Active        bool            `gorm:"not null;default:true"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Store *Store `gorm:"foreignKey:StoreID"`
}

// Payroll is one month of pay for one employee.
// NetSalary is derived on every write: base + commission + bonus − deductions.
type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_period"`
	Year       int       `gorm:"not null;uniqueIndex:idx_payroll_period"`
	Month      int       `gorm:"not null;uniqueIndex:idx_payroll_period"`

	BaseSalary decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Commission decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Bonus      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Deductions decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	NetSalary  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Paid      bool       `gorm:"not null;default:false"`
	PaidAt    *time.Time `gorm:"type:date"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

func (Payroll) TableName() string { return "payrolls" }
