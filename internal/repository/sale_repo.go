package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Store").Preload("Seller").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.StoreID != "" {
		q = q.Where("store_id = ?", filter.StoreID)
	}
	if filter.SellerID != "" {
		q = q.Where("seller_id = ?", filter.SellerID)
	}
	if filter.DateFrom != "" {
		q = q.Where("sale_date >= ?::date", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("sale_date < (?::date + interval '1 day')", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").Preload("Store").Preload("Seller").
		Order("sale_date DESC").Limit(filter.Limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("cash_till_session_id = ?", sessionID).Count(&n).Error
	return n, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
