package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenTillRequest struct {
	// StoreID is required for admin callers; gerente callers open the till
	// of their own store and may omit it.
	StoreID       *string         `json:"store_id"       validate:"omitempty,uuid"`
	InitialAmount decimal.Decimal `json:"initial_amount" validate:"min=0"`
	Notes         *string         `json:"notes"`
}

type CloseTillRequest struct {
	FinalAmountReported decimal.Decimal `json:"final_amount_reported" validate:"min=0"`
	Notes               *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TillSessionResponse struct {
	ID                    string           `json:"id"`
	StoreID               string           `json:"store_id"`
	StoreName             string           `json:"store_name,omitempty"`
	OpenedByID            string           `json:"opened_by_id"`
	OpenedByName          string           `json:"opened_by_name,omitempty"`
	ClosedByID            *string          `json:"closed_by_id"`
	OpenedAt              string           `json:"opened_at"`
	ClosedAt              *string          `json:"closed_at"`
	InitialAmount         decimal.Decimal  `json:"initial_amount"`
	FinalAmountReported   *decimal.Decimal `json:"final_amount_reported"`
	FinalAmountCalculated *decimal.Decimal `json:"final_amount_calculated"`
	Difference            *decimal.Decimal `json:"difference"`
	Status                string           `json:"status"`
	Notes                 *string          `json:"notes"`
}

// TillStatusResponse is returned by GET /v1/caixa/status: the open session of
// the caller's store plus its running totals.
type TillStatusResponse struct {
	Open         bool                 `json:"open"`
	Session      *TillSessionResponse `json:"session"`
	SalesCount   int64                `json:"sales_count"`
	SalesTotal   decimal.Decimal     `json:"sales_total"`
	CashExpected decimal.Decimal     `json:"cash_expected"`
}

type CashFlowResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	SessionID   *string         `json:"cash_till_session_id"`
	Amount      decimal.Decimal `json:"amount"`
	FlowType    string          `json:"flow_type"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}
