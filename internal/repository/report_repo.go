package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/model"
)

// Aggregation row types scanned straight out of GROUP BY queries.

type StoreSalesRow struct {
	StoreID    string
	StoreName  string
	SalesCount int64
	Total      decimal.Decimal
}

type PaymentRow struct {
	PaymentMethod string
	SalesCount    int64
	Total         decimal.Decimal
}

type ProductRankRow struct {
	ProductID    string
	ProductName  string
	Code         string
	QuantitySold int64
	Total        decimal.Decimal
}

type SellerRankRow struct {
	SellerID   string
	SellerName string
	SalesCount int64
	Total      decimal.Decimal
}

type ReportRepository interface {
	SalesTotals(ctx context.Context, storeID string, from, to time.Time) (int64, decimal.Decimal, error)
	SalesByStore(ctx context.Context, from, to time.Time) ([]StoreSalesRow, error)
	SalesByPayment(ctx context.Context, storeID string, from, to time.Time) ([]PaymentRow, error)
	ProductRank(ctx context.Context, storeID string, from, to time.Time, limit int, worst bool) ([]ProductRankRow, error)
	SellerRank(ctx context.Context, storeID string, from, to time.Time, limit int) ([]SellerRankRow, error)
	CountOpenTills(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	CashFlowTotals(ctx context.Context, storeID string, from, to time.Time) (inflow, outflow decimal.Decimal, err error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) salesBase(ctx context.Context, storeID string, from, to time.Time) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", from, to)
	if storeID != "" {
		q = q.Where("sales.store_id = ?", storeID)
	}
	return q
}

func (r *reportRepo) SalesTotals(ctx context.Context, storeID string, from, to time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		SalesCount int64
		Total      decimal.NullDecimal
	}
	err := r.salesBase(ctx, storeID, from, to).
		Select("COUNT(*) AS sales_count, SUM(total_amount) AS total").
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	total := decimal.Zero
	if row.Total.Valid {
		total = row.Total.Decimal
	}
	return row.SalesCount, total, nil
}

func (r *reportRepo) SalesByStore(ctx context.Context, from, to time.Time) ([]StoreSalesRow, error) {
	var rows []StoreSalesRow
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("sales.store_id AS store_id, stores.name AS store_name, COUNT(*) AS sales_count, SUM(sales.total_amount) AS total").
		Joins("JOIN stores ON stores.id = sales.store_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to).
		Group("sales.store_id, stores.name").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) SalesByPayment(ctx context.Context, storeID string, from, to time.Time) ([]PaymentRow, error) {
	var rows []PaymentRow
	err := r.salesBase(ctx, storeID, from, to).
		Select("payment_method, COUNT(*) AS sales_count, SUM(total_amount) AS total").
		Group("payment_method").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ProductRank(ctx context.Context, storeID string, from, to time.Time, limit int, worst bool) ([]ProductRankRow, error) {
	order := "quantity_sold DESC"
	if worst {
		order = "quantity_sold ASC"
	}
	var rows []ProductRankRow
	q := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Select("sale_items.product_id AS product_id, products.name AS product_name, products.code AS code, SUM(sale_items.quantity) AS quantity_sold, SUM(sale_items.total_price) AS total").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to)
	if storeID != "" {
		q = q.Where("sales.store_id = ?", storeID)
	}
	err := q.Group("sale_items.product_id, products.name, products.code").
		Order(order).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) SellerRank(ctx context.Context, storeID string, from, to time.Time, limit int) ([]SellerRankRow, error) {
	var rows []SellerRankRow
	q := r.salesBase(ctx, storeID, from, to).
		Select("sales.seller_id AS seller_id, sellers.name AS seller_name, COUNT(*) AS sales_count, SUM(sales.total_amount) AS total").
		Joins("JOIN sellers ON sellers.id = sales.seller_id")
	err := q.Group("sales.seller_id, sellers.name").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) CountOpenTills(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CashTillSession{}).
		Where("status = ?", model.TillOpen).Count(&n).Error
	return n, err
}

func (r *reportRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.StoreProduct{}).
		Where("quantity <= ?", threshold).Count(&n).Error
	return n, err
}

func (r *reportRepo) CashFlowTotals(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var rows []struct {
		FlowType string
		Total    decimal.NullDecimal
	}
	q := r.db.WithContext(ctx).Model(&model.CashFlow{}).
		Select("flow_type, SUM(amount) AS total").
		Where("created_at >= ? AND created_at < ?", from, to)
	if storeID != "" {
		q = q.Where("store_id = ?", storeID)
	}
	if err := q.Group("flow_type").Scan(&rows).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	inflow, outflow := decimal.Zero, decimal.Zero
	for _, row := range rows {
		if !row.Total.Valid {
			continue
		}
		switch row.FlowType {
		case model.MovementEntrada:
			inflow = row.Total.Decimal
		case model.MovementSaida:
			outflow = row.Total.Decimal
		}
	}
	return inflow, outflow, nil
}
