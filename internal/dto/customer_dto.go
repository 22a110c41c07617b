package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=120"`
	Email     string  `json:"email"      validate:"omitempty,email"`
	Phone     string  `json:"phone"`
	CPF       string  `json:"cpf"        validate:"required,min=11,max=14"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Sex       string  `json:"sex"        validate:"omitempty,oneof=M F O"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"      validate:"omitempty,len=2"`
	ZipCode   string  `json:"zip_code"`
	Notes     string  `json:"notes"`

	GrauOD       *string `json:"grau_od"`
	GrauOE       *string `json:"grau_oe"`
	DNPOD        *string `json:"dnp_od"`
	DNPOE        *string `json:"dnp_oe"`
	Adicao       *string `json:"adicao"`
	OpticalNotes *string `json:"optical_notes"`
}

type UpdateCustomerRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=2,max=120"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Sex       *string `json:"sex"        validate:"omitempty,oneof=M F O"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"      validate:"omitempty,len=2"`
	ZipCode   *string `json:"zip_code"`
	Notes     *string `json:"notes"`

	GrauOD       *string `json:"grau_od"`
	GrauOE       *string `json:"grau_oe"`
	DNPOD        *string `json:"dnp_od"`
	DNPOE        *string `json:"dnp_oe"`
	Adicao       *string `json:"adicao"`
	OpticalNotes *string `json:"optical_notes"`
}

// ─── Filter / Response ───────────────────────────────────────────────────────

type CustomerFilter struct {
	Name  string `form:"name"`
	CPF   string `form:"cpf"`
	Phone string `form:"phone"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	CPF       string  `json:"cpf"`
	BirthDate *string `json:"birth_date"`
	Sex       string  `json:"sex"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zip_code"`
	Notes     string  `json:"notes"`

	GrauOD       *string `json:"grau_od"`
	GrauOE       *string `json:"grau_oe"`
	DNPOD        *string `json:"dnp_od"`
	DNPOE        *string `json:"dnp_oe"`
	Adicao       *string `json:"adicao"`
	OpticalNotes *string `json:"optical_notes"`

	CreatedAt string `json:"created_at"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
