package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateSaleRequest struct {
	// StoreID is required for admin callers; gerente callers always sell
	// against their own store and may omit it.
	StoreID       *string           `json:"store_id"       validate:"omitempty,uuid"`
	SellerID      string            `json:"seller_id"      validate:"required,uuid"`
	CustomerID    *string           `json:"customer_id"    validate:"omitempty,uuid"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail *string           `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string            `json:"customer_phone"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=dinheiro cartao_credito cartao_debito pix"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type SaleFilter struct {
	StoreID  string `form:"store_id"`
	SellerID string `form:"seller_id"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`   // YYYY-MM-DD
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Code        string          `json:"code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID                string             `json:"id"`
	StoreID           string             `json:"store_id"`
	StoreName         string             `json:"store_name,omitempty"`
	CashTillSessionID string             `json:"cash_till_session_id"`
	SellerID          string             `json:"seller_id"`
	SellerName        string             `json:"seller_name,omitempty"`
	CustomerID        *string            `json:"customer_id"`
	CustomerName      string             `json:"customer_name"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	PaymentMethod     string             `json:"payment_method"`
	SaleDate          string             `json:"sale_date"`
	Items             []SaleItemResponse `json:"items"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
