package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SellerRequest struct {
	Name    string `json:"name"     validate:"required,min=2,max=120"`
	Email   string `json:"email"    validate:"omitempty,email"`
	Phone   string `json:"phone"`
	StoreID string `json:"store_id" validate:"required,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SellerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name,omitempty"`
}
