package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
)

// ProductRepository defines the data access contract for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	CreateTx(tx *gorm.DB, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// NextCodeTx allocates the next sequential product code inside tx.
	// It takes a transaction-scoped advisory lock so concurrent creations
	// cannot allocate the same code.
	NextCodeTx(tx *gorm.DB) (string, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

// codeAllocLockKey identifies the advisory lock guarding code allocation.
const codeAllocLockKey = 784211

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("code = ?", code).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Brand != "" {
		q = q.Where("brand ILIKE ?", "%"+filter.Brand+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AssortmentStoreID != "" {
		q = q.Where("id IN (?)",
			r.db.Model(&model.StoreProduct{}).Select("product_id").Where("store_id = ?", filter.AssortmentStoreID))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) NextCodeTx(tx *gorm.DB) (string, error) {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", codeAllocLockKey).Error; err != nil {
		return "", err
	}

	var max *int
	row := tx.Raw(`SELECT MAX(code::int) FROM products WHERE code ~ '^[0-9]+$'`).Row()
	if row == nil {
		return "", errors.New("code allocation query returned no row")
	}
	if err := row.Scan(&max); err != nil {
		return "", err
	}

	next := 1
	if max != nil {
		next = *max + 1
	}
	return fmt.Sprintf("%02d", next), nil
}

func (r *productRepo) DB() *gorm.DB { return r.db }
