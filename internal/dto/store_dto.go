package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateStoreRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=120"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"      validate:"omitempty,email"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

type UpdateStoreRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=2,max=120"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StoreResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	ManagerID   *string `json:"manager_id"`
	ManagerName *string `json:"manager_name,omitempty"`
}

type CategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=80"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}
