package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EyeMeasurement struct {
	Sphere   *decimal.Decimal `json:"sphere"`
	Cylinder *decimal.Decimal `json:"cylinder"`
	Axis     *int             `json:"axis"     validate:"omitempty,min=0,max=180"`
	Addition *decimal.Decimal `json:"addition"`
	DNP      *decimal.Decimal `json:"dnp"`
	Height   *decimal.Decimal `json:"height"`
}

type CreateOrderRequest struct {
	CustomerName  string  `json:"customer_name"  validate:"required,min=2,max=120"`
	CustomerPhone string  `json:"customer_phone"`
	SellerID      *string `json:"seller_id"      validate:"omitempty,uuid"`
	// StoreID is required for admin callers; gerente callers may omit it.
	StoreID *string `json:"store_id" validate:"omitempty,uuid"`

	RightEye EyeMeasurement `json:"right_eye"`
	LeftEye  EyeMeasurement `json:"left_eye"`

	LensDescription  string          `json:"lens_description"`
	FrameDescription string          `json:"frame_description"`
	Notes            string          `json:"notes"`
	TotalPrice       decimal.Decimal `json:"total_price" validate:"required"`
}

type UpdateOrderRequest struct {
	CustomerName  *string `json:"customer_name"  validate:"omitempty,min=2,max=120"`
	CustomerPhone *string `json:"customer_phone"`
	SellerID      *string `json:"seller_id"      validate:"omitempty,uuid"`

	RightEye *EyeMeasurement `json:"right_eye"`
	LeftEye  *EyeMeasurement `json:"left_eye"`

	LensDescription  *string          `json:"lens_description"`
	FrameDescription *string          `json:"frame_description"`
	Notes            *string          `json:"notes"`
	TotalPrice       *decimal.Decimal `json:"total_price"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=realizando pronto entregue"`
}

// ─── Filter / Response ───────────────────────────────────────────────────────

type OrderFilter struct {
	StoreID      string `form:"store_id"`
	Status       string `form:"status"`
	CustomerName string `form:"customer_name"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type OrderResponse struct {
	ID            string  `json:"id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	SellerID      *string `json:"seller_id"`
	SellerName    string  `json:"seller_name,omitempty"`
	StoreID       string  `json:"store_id"`
	StoreName     string  `json:"store_name,omitempty"`

	RightEye EyeMeasurement `json:"right_eye"`
	LeftEye  EyeMeasurement `json:"left_eye"`

	LensDescription  string          `json:"lens_description"`
	FrameDescription string          `json:"frame_description"`
	Notes            string          `json:"notes"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Status           string          `json:"status"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
