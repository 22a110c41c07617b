package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type ReportFilter struct {
	StoreID  string `form:"store_id"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD; empty = first day of month
	DateTo   string `form:"date_to"`   // YYYY-MM-DD; empty = today
	Limit    int    `form:"limit,default=10" validate:"min=1,max=50"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StoreSalesSummary struct {
	StoreID    string          `json:"store_id"`
	StoreName  string          `json:"store_name"`
	SalesCount int64           `json:"sales_count"`
	Total      decimal.Decimal `json:"total"`
}

type SalesReportResponse struct {
	DateFrom   string              `json:"date_from"`
	DateTo     string              `json:"date_to"`
	SalesCount int64               `json:"sales_count"`
	Total      decimal.Decimal     `json:"total"`
	ByStore    []StoreSalesSummary `json:"by_store"`
	ByPayment  []PaymentSummary    `json:"by_payment"`
}

type PaymentSummary struct {
	PaymentMethod string          `json:"payment_method"`
	SalesCount    int64           `json:"sales_count"`
	Total         decimal.Decimal `json:"total"`
}

type ProductRankEntry struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Code         string          `json:"code"`
	QuantitySold int64           `json:"quantity_sold"`
	Total        decimal.Decimal `json:"total"`
}

type ProductRankResponse struct {
	DateFrom string             `json:"date_from"`
	DateTo   string             `json:"date_to"`
	Data     []ProductRankEntry `json:"data"`
}

type SellerRankEntry struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	SalesCount int64           `json:"sales_count"`
	Total      decimal.Decimal `json:"total"`
}

// DashboardResponse powers the landing screen: today's numbers plus the
// month-to-date aggregates.
type DashboardResponse struct {
	TodaySalesCount int64           `json:"today_sales_count"`
	TodayTotal      decimal.Decimal `json:"today_total"`
	MonthSalesCount int64           `json:"month_sales_count"`
	MonthTotal      decimal.Decimal `json:"month_total"`
	OpenTills       int64           `json:"open_tills"`
	LowStockCount   int64           `json:"low_stock_count"`
	ByStore         []StoreSalesSummary `json:"by_store"`
	TopProducts     []ProductRankEntry  `json:"top_products"`
	TopSellers      []SellerRankEntry   `json:"top_sellers"`
}

type CashFlowReportResponse struct {
	DateFrom string          `json:"date_from"`
	DateTo   string          `json:"date_to"`
	Inflow   decimal.Decimal `json:"inflow"`
	Outflow  decimal.Decimal `json:"outflow"`
	Balance  decimal.Decimal `json:"balance"`
	Data     []CashFlowResponse `json:"data"`
}
