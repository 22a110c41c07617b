package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/model"
)

type SellerRepository interface {
	Create(ctx context.Context, s *model.Seller) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error)
	List(ctx context.Context, storeID *uuid.UUID) ([]model.Seller, error)
	Update(ctx context.Context, s *model.Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerRepo struct{ db *gorm.DB }

func NewSellerRepository(db *gorm.DB) SellerRepository { return &sellerRepo{db: db} }

func (r *sellerRepo) Create(ctx context.Context, s *model.Seller) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sellerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error) {
	var s model.Seller
	err := r.db.WithContext(ctx).Preload("Store").First(&s, id).Error
	return &s, err
}

func (r *sellerRepo) List(ctx context.Context, storeID *uuid.UUID) ([]model.Seller, error) {
	var sellers []model.Seller
	q := r.db.WithContext(ctx).Preload("Store").Order("name ASC")
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	err := q.Find(&sellers).Error
	return sellers, err
}

func (r *sellerRepo) Update(ctx context.Context, s *model.Seller) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sellerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Seller{}, id).Error
}
