package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name    string `json:"name"     validate:"required,min=2,max=120"`
	CNPJ    string `json:"cnpj"     validate:"omitempty,min=14,max=18"`
	CPF     string `json:"cpf"      validate:"omitempty,min=11,max=14"`
	Email   string `json:"email"    validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"    validate:"omitempty,len=2"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"     validate:"omitempty,min=2,max=120"`
	CNPJ    *string `json:"cnpj"     validate:"omitempty,min=14,max=18"`
	CPF     *string `json:"cpf"      validate:"omitempty,min=11,max=14"`
	Email   *string `json:"email"    validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"    validate:"omitempty,len=2"`
	ZipCode *string `json:"zip_code"`
	Notes   *string `json:"notes"`
	Active  *bool   `json:"active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	CPF     string `json:"cpf"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`
	Active  bool   `json:"active"`
}
