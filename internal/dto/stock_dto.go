package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type StockMovementRequest struct {
	ProductID    string `json:"product_id"    validate:"required,uuid"`
	StoreID      string `json:"store_id"      validate:"required,uuid"`
	Quantity     int    `json:"quantity"      validate:"required,min=1"`
	MovementType string `json:"movement_type" validate:"required,oneof=entrada saida"`
	Reason       string `json:"reason"        validate:"required,min=3"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type StockMovementFilter struct {
	ProductID string `form:"product_id"`
	StoreID   string `form:"store_id"`
	Type      string `form:"type"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StoreStockResponse struct {
	StoreID     string `json:"store_id"`
	StoreName   string `json:"store_name"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Code        string `json:"code"`
	Quantity    int    `json:"quantity"`
}

type StockMovementResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name,omitempty"`
	StoreID      string `json:"store_id"`
	StoreName    string `json:"store_name,omitempty"`
	Quantity     int    `json:"quantity"`
	MovementType string `json:"movement_type"`
	Reason       string `json:"reason"`
	CreatedAt    string `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
