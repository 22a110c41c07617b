package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	Update(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Seller").Preload("Store").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.StoreID != "" {
		q = q.Where("store_id = ?", filter.StoreID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerName != "" {
		q = q.Where("customer_name ILIKE ?", "%"+filter.CustomerName+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Seller").Preload("Store").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}
