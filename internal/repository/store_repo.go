package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/model"
)

type StoreRepository interface {
	Create(ctx context.Context, s *model.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	Update(ctx context.Context, s *model.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeRepo struct{ db *gorm.DB }

func NewStoreRepository(db *gorm.DB) StoreRepository { return &storeRepo{db: db} }

func (r *storeRepo) Create(ctx context.Context, s *model.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *storeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).Preload("Manager").First(&s, id).Error
	return &s, err
}

func (r *storeRepo) List(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).Preload("Manager").Order("name ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) Update(ctx context.Context, s *model.Store) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *storeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Store{}, id).Error
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("active", false).Error
}

func (r *categoryRepo) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}
