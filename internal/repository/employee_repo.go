package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Employee, error)
	List(ctx context.Context, storeID *uuid.UUID) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error

	CreatePayroll(ctx context.Context, p *model.Payroll) error
	FindPayrollByID(ctx context.Context, id uuid.UUID) (*model.Payroll, error)
	FindPayrollByPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (*model.Payroll, error)
	ListPayrolls(ctx context.Context, filter dto.PayrollFilter) ([]model.Payroll, error)
	UpdatePayroll(ctx context.Context, p *model.Payroll) error
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Preload("Store").First(&e, id).Error
	return &e, err
}

func (r *employeeRepo) FindByCPF(ctx context.Context, cpf string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&e).Error
	return &e, err
}

func (r *employeeRepo) List(ctx context.Context, storeID *uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	q := r.db.WithContext(ctx).Preload("Store").Where("active = true").Order("name ASC")
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	err := q.Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *employeeRepo) CreatePayroll(ctx context.Context, p *model.Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *employeeRepo) FindPayrollByID(ctx context.Context, id uuid.UUID) (*model.Payroll, error) {
	var p model.Payroll
	err := r.db.WithContext(ctx).Preload("Employee").First(&p, id).Error
	return &p, err
}

func (r *employeeRepo) FindPayrollByPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (*model.Payroll, error) {
	var p model.Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		First(&p).Error
	return &p, err
}

func (r *employeeRepo) ListPayrolls(ctx context.Context, filter dto.PayrollFilter) ([]model.Payroll, error) {
	var payrolls []model.Payroll
	q := r.db.WithContext(ctx).Preload("Employee").Order("year DESC, month DESC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	switch filter.Paid {
	case "true":
		q = q.Where("paid = true")
	case "false":
		q = q.Where("paid = false")
	}
	err := q.Find(&payrolls).Error
	return payrolls, err
}

func (r *employeeRepo) UpdatePayroll(ctx context.Context, p *model.Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}
