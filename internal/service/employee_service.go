package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

type EmployeeService interface {
	Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)

	CreatePayroll(ctx context.Context, req dto.CreatePayrollRequest) (*dto.PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter dto.PayrollFilter) ([]dto.PayrollResponse, error)
	UpdatePayroll(ctx context.Context, id uuid.UUID, req dto.UpdatePayrollRequest) (*dto.PayrollResponse, error)
}

type employeeService struct {
	repo      repository.EmployeeRepository
	storeRepo repository.StoreRepository
}

func NewEmployeeService(repo repository.EmployeeRepository, storeRepo repository.StoreRepository) EmployeeService {
	return &employeeService{repo: repo, storeRepo: storeRepo}
}

func (s *employeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.FindByCPF(ctx, req.CPF); err == nil {
		return nil, apperr.Conflictf("Já existe um funcionário com este CPF")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, apperr.Validationf("store_id inválido")
	}
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, apperr.NotFound("Loja")
	}

	hired, err := time.Parse("2006-01-02", req.HiredAt)
	if err != nil {
		return nil, apperr.Validationf("hired_at inválida")
	}
	if req.BaseSalary.IsNegative() || req.CommissionPct.IsNegative() {
		return nil, apperr.Validationf("salário e comissão não podem ser negativos")
	}

	employee := model.Employee{
		Name:          req.Name,
		CPF:           req.CPF,
		Email:         req.Email,
		Phone:         req.Phone,
		Cargo:         req.Cargo,
		HiredAt:       hired,
		BaseSalary:    req.BaseSalary,
		CommissionPct: req.CommissionPct,
		StoreID:       storeID,
		Active:        true,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, &employee); err != nil {
		return nil, err
	}
	return employeeToResponse(&employee), nil
}

func (s *employeeService) FindByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Funcionário")
		}
		return nil, err
	}
	return employeeToResponse(employee), nil
}

func (s *employeeService) List(ctx context.Context, actor Actor) ([]dto.EmployeeResponse, error) {
	var storeID *uuid.UUID
	if !actor.IsAdmin() {
		if actor.StoreID == nil {
			return nil, apperr.Validationf("usuário não está vinculado a nenhuma loja")
		}
		storeID = actor.StoreID
	}

	employees, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *employeeToResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Funcionário")
		}
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Cargo != nil {
		employee.Cargo = *req.Cargo
	}
	if req.DismissedAt != nil {
		dismissed, err := time.Parse("2006-01-02", *req.DismissedAt)
		if err != nil {
			return nil, apperr.Validationf("dismissed_at inválida")
		}
		employee.DismissedAt = &dismissed
		employee.Active = false
	}
	if req.BaseSalary != nil {
		if req.BaseSalary.IsNegative() {
			return nil, apperr.Validationf("salário não pode ser negativo")
		}
		employee.BaseSalary = *req.BaseSalary
	}
	if req.CommissionPct != nil {
		if req.CommissionPct.IsNegative() {
			return nil, apperr.Validationf("comissão não pode ser negativa")
		}
		employee.CommissionPct = *req.CommissionPct
	}
	if req.StoreID != nil {
		sid, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return nil, apperr.Validationf("store_id inválido")
		}
		if _, err := s.storeRepo.FindByID(ctx, sid); err != nil {
			return nil, apperr.NotFound("Loja")
		}
		employee.StoreID = sid
		employee.Store = nil
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if req.Notes != nil {
		employee.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// CreatePayroll records one month of pay. The period is unique per employee;
// NetSalary is always derived server-side:
//
//	net = base + commission + bonus − deductions
func (s *employeeService) CreatePayroll(ctx context.Context, req dto.CreatePayrollRequest) (*dto.PayrollResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, apperr.Validationf("employee_id inválido")
	}
	employee, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, apperr.NotFound("Funcionário")
	}

	if _, err := s.repo.FindPayrollByPeriod(ctx, employeeID, req.Year, req.Month); err == nil {
		return nil, apperr.Conflictf("Folha de pagamento já lançada para este período")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payroll := model.Payroll{
		EmployeeID: employeeID,
		Year:       req.Year,
		Month:      req.Month,
		BaseSalary: employee.BaseSalary,
		Commission: req.Commission,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		Notes:      req.Notes,
	}
	payroll.NetSalary = netSalary(&payroll)

	if err := s.repo.CreatePayroll(ctx, &payroll); err != nil {
		return nil, err
	}
	resp := payrollToResponse(&payroll)
	resp.EmployeeName = employee.Name
	return resp, nil
}

func (s *employeeService) ListPayrolls(ctx context.Context, filter dto.PayrollFilter) ([]dto.PayrollResponse, error) {
	payrolls, err := s.repo.ListPayrolls(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayrollResponse, 0, len(payrolls))
	for i := range payrolls {
		out = append(out, *payrollToResponse(&payrolls[i]))
	}
	return out, nil
}

func (s *employeeService) UpdatePayroll(ctx context.Context, id uuid.UUID, req dto.UpdatePayrollRequest) (*dto.PayrollResponse, error) {
	payroll, err := s.repo.FindPayrollByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Folha de pagamento")
		}
		return nil, err
	}

	if req.Commission != nil {
		payroll.Commission = *req.Commission
	}
	if req.Bonus != nil {
		payroll.Bonus = *req.Bonus
	}
	if req.Deductions != nil {
		payroll.Deductions = *req.Deductions
	}
	if req.Notes != nil {
		payroll.Notes = *req.Notes
	}
	if req.Paid != nil {
		payroll.Paid = *req.Paid
		if *req.Paid && payroll.PaidAt == nil {
			now := time.Now()
			payroll.PaidAt = &now
		}
		if !*req.Paid {
			payroll.PaidAt = nil
		}
	}
	payroll.NetSalary = netSalary(payroll)

	if err := s.repo.UpdatePayroll(ctx, payroll); err != nil {
		return nil, err
	}
	return payrollToResponse(payroll), nil
}

func netSalary(p *model.Payroll) decimal.Decimal {
	return p.BaseSalary.Add(p.Commission).Add(p.Bonus).Sub(p.Deductions)
}

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	resp := &dto.EmployeeResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		CPF:           e.CPF,
		Email:         e.Email,
		Phone:         e.Phone,
		Cargo:         e.Cargo,
		HiredAt:       e.HiredAt.Format("2006-01-02"),
		BaseSalary:    e.BaseSalary,
		CommissionPct: e.CommissionPct,
		StoreID:       e.StoreID.String(),
		Active:        e.Active,
		Notes:         e.Notes,
	}
	if e.DismissedAt != nil {
		dismissed := e.DismissedAt.Format("2006-01-02")
		resp.DismissedAt = &dismissed
	}
	if e.Store != nil {
		resp.StoreName = e.Store.Name
	}
	return resp
}

func payrollToResponse(p *model.Payroll) *dto.PayrollResponse {
	resp := &dto.PayrollResponse{
		ID:         p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Year:       p.Year,
		Month:      p.Month,
		BaseSalary: p.BaseSalary,
		Commission: p.Commission,
		Bonus:      p.Bonus,
		Deductions: p.Deductions,
		NetSalary:  p.NetSalary,
		Paid:       p.Paid,
		Notes:      p.Notes,
	}
	if p.PaidAt != nil {
		paid := p.PaidAt.Format("2006-01-02")
		resp.PaidAt = &paid
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.Name
	}
	return resp
}
