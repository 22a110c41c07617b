package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=40"`
	Name     string  `json:"name"     validate:"required,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"     validate:"required,oneof=admin gerente"`
	StoreID  *string `json:"store_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name    *string `json:"name"     validate:"omitempty,min=2,max=120"`
	Email   *string `json:"email"    validate:"omitempty,email"`
	Role    *string `json:"role"     validate:"omitempty,oneof=admin gerente"`
	StoreID *string `json:"store_id" validate:"omitempty,uuid"`
	Active  *bool   `json:"active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserListResponse struct {
	Data  []UserResponse `json:"data"`
	Total int64          `json:"total"`
}
