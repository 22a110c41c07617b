package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateEmployeeRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=120"`
	CPF           string          `json:"cpf"            validate:"required,min=11,max=14"`
	Email         string          `json:"email"          validate:"omitempty,email"`
	Phone         string          `json:"phone"`
	Cargo         string          `json:"cargo"          validate:"required,oneof=vendedor gerente optico auxiliar outro"`
	HiredAt       string          `json:"hired_at"       validate:"required,datetime=2006-01-02"`
	BaseSalary    decimal.Decimal `json:"base_salary"    validate:"required"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	StoreID       string          `json:"store_id"       validate:"required,uuid"`
	Notes         string          `json:"notes"`
}

type UpdateEmployeeRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2,max=120"`
	Email         *string          `json:"email"          validate:"omitempty,email"`
	Phone         *string          `json:"phone"`
	Cargo         *string          `json:"cargo"          validate:"omitempty,oneof=vendedor gerente optico auxiliar outro"`
	DismissedAt   *string          `json:"dismissed_at"   validate:"omitempty,datetime=2006-01-02"`
	BaseSalary    *decimal.Decimal `json:"base_salary"`
	CommissionPct *decimal.Decimal `json:"commission_pct"`
	StoreID       *string          `json:"store_id"       validate:"omitempty,uuid"`
	Active        *bool            `json:"active"`
	Notes         *string          `json:"notes"`
}

type CreatePayrollRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required,uuid"`
	Year       int             `json:"year"        validate:"required,min=2000,max=2100"`
	Month      int             `json:"month"       validate:"required,min=1,max=12"`
	Commission decimal.Decimal `json:"commission"  validate:"min=0"`
	Bonus      decimal.Decimal `json:"bonus"       validate:"min=0"`
	Deductions decimal.Decimal `json:"deductions"  validate:"min=0"`
	Notes      string          `json:"notes"`
}

type UpdatePayrollRequest struct {
	Commission *decimal.Decimal `json:"commission" validate:"omitempty,min=0"`
	Bonus      *decimal.Decimal `json:"bonus"      validate:"omitempty,min=0"`
	Deductions *decimal.Decimal `json:"deductions" validate:"omitempty,min=0"`
	Paid       *bool            `json:"paid"`
	Notes      *string          `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmployeeResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CPF           string          `json:"cpf"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Cargo         string          `json:"cargo"`
	HiredAt       string          `json:"hired_at"`
	DismissedAt   *string         `json:"dismissed_at"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	StoreID       string          `json:"store_id"`
	StoreName     string          `json:"store_name,omitempty"`
	Active        bool            `json:"active"`
	Notes         string          `json:"notes"`
}

type PayrollResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Commission   decimal.Decimal `json:"commission"`
	Bonus        decimal.Decimal `json:"bonus"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	Paid         bool            `json:"paid"`
	PaidAt       *string         `json:"paid_at"`
	Notes        string          `json:"notes"`
}

type PayrollFilter struct {
	EmployeeID string `form:"employee_id"`
	Year       int    `form:"year"`
	Month      int    `form:"month"`
	Paid       string `form:"paid"` // "true" | "false" | ""
}
