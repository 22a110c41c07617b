package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) FindByCPF(ctx context.Context, cpf string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&c).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CPF != "" {
		q = q.Where("cpf = ?", filter.CPF)
	}
	if filter.Phone != "" {
		q = q.Where("phone LIKE ?", "%"+filter.Phone+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}
