package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest deliberately carries no Code field: sequential codes
// are allocated server-side and never chosen by the caller.
type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=2,max=120"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	Cost        decimal.Decimal `json:"cost"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	// Optional initial stock per store, applied as "entrada" movements.
	InitialStock []InitialStockEntry `json:"initial_stock" validate:"omitempty,dive"`
}

type InitialStockEntry struct {
	StoreID  string `json:"store_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	Brand       *string          `json:"brand"`
	Model       *string          `json:"model"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	Code       string `form:"code"`
	Brand      string `form:"brand"`
	CategoryID string `form:"category_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
	// AssortmentStoreID restricts the listing to products stocked by one
	// store. Set internally for gerente callers, never bound from the query.
	AssortmentStoreID string `form:"-"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	// TotalStock sums the product's quantity across every store.
	TotalStock int `json:"total_stock"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
