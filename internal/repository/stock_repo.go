package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
)

// StockRepository owns the per-store quantity rows and the append-only
// movement log. Quantity changes always happen through the *Tx methods so
// the caller controls the transaction boundary.
type StockRepository interface {
	FindQuantity(ctx context.Context, storeID, productID uuid.UUID) (int, error)
	// ListForStore optionally narrows by stock level: "low" (0 < qty < 5),
	// "out" (qty = 0) or "normal" (qty >= 5).
	ListForStore(ctx context.Context, storeID uuid.UUID, stockLevel string) ([]model.StoreProduct, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]model.StoreProduct, error)
	TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error)

	// DecrementTx subtracts qty from the store/product row only when enough
	// stock is available. Returns (false, nil) when the guard fails.
	DecrementTx(tx *gorm.DB, storeID, productID uuid.UUID, qty int) (bool, error)
	// IncrementTx adds qty, creating the row when it does not exist yet.
	IncrementTx(tx *gorm.DB, storeID, productID uuid.UUID, qty int) error

	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error
	ListMovements(ctx context.Context, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error)

	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) FindQuantity(ctx context.Context, storeID, productID uuid.UUID) (int, error) {
	var sp model.StoreProduct
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&sp).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return sp.Quantity, err
}

const lowStockThreshold = 5

func (r *stockRepo) ListForStore(ctx context.Context, storeID uuid.UUID, stockLevel string) ([]model.StoreProduct, error) {
	var rows []model.StoreProduct
	q := r.db.WithContext(ctx).
		Preload("Product").Preload("Store").
		Where("store_id = ?", storeID)
	switch stockLevel {
	case "low":
		q = q.Where("quantity > 0 AND quantity < ?", lowStockThreshold)
	case "out":
		q = q.Where("quantity = 0")
	case "normal":
		q = q.Where("quantity >= ?", lowStockThreshold)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *stockRepo) ListForProduct(ctx context.Context, productID uuid.UUID) ([]model.StoreProduct, error) {
	var rows []model.StoreProduct
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Store").
		Where("product_id = ?", productID).
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.StoreProduct{}).
		Select("SUM(quantity)").
		Where("product_id = ?", productID).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *stockRepo) DecrementTx(tx *gorm.DB, storeID, productID uuid.UUID, qty int) (bool, error) {
	// The quantity guard in the WHERE clause makes check-and-decrement a
	// single atomic statement; RowsAffected == 0 means insufficient stock.
	res := tx.Model(&model.StoreProduct{}).
		Where("store_id = ? AND product_id = ? AND quantity >= ?", storeID, productID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *stockRepo) IncrementTx(tx *gorm.DB, storeID, productID uuid.UUID, qty int) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("store_products.quantity + ?", qty)}),
	}).Create(&model.StoreProduct{StoreID: storeID, ProductID: productID, Quantity: qty}).Error
}

func (r *stockRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockRepo) ListMovements(ctx context.Context, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var movs []model.StockMovement
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.StoreID != "" {
		q = q.Where("store_id = ?", filter.StoreID)
	}
	if filter.Type != "" {
		q = q.Where("movement_type = ?", filter.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Preload("Store").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&movs).Error
	return movs, total, err
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
