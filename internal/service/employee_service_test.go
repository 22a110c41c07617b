package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type payrollKey struct {
	employee uuid.UUID
	year     int
	month    int
}

type stubEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
	payrolls  map[uuid.UUID]*model.Payroll
	periods   map[payrollKey]uuid.UUID
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{
		employees: make(map[uuid.UUID]*model.Employee),
		payrolls:  make(map[uuid.UUID]*model.Payroll),
		periods:   make(map[payrollKey]uuid.UUID),
	}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEmployeeRepo) FindByCPF(_ context.Context, cpf string) (*model.Employee, error) {
	for _, e := range r.employees {
		if e.CPF == cpf {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) List(_ context.Context, storeID *uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if storeID == nil || e.StoreID == *storeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) CreatePayroll(_ context.Context, p *model.Payroll) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payrolls[p.ID] = p
	r.periods[payrollKey{p.EmployeeID, p.Year, p.Month}] = p.ID
	return nil
}

func (r *stubEmployeeRepo) FindPayrollByID(_ context.Context, id uuid.UUID) (*model.Payroll, error) {
	p, ok := r.payrolls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubEmployeeRepo) FindPayrollByPeriod(_ context.Context, employeeID uuid.UUID, year, month int) (*model.Payroll, error) {
	id, ok := r.periods[payrollKey{employeeID, year, month}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.payrolls[id], nil
}

func (r *stubEmployeeRepo) ListPayrolls(_ context.Context, _ dto.PayrollFilter) ([]model.Payroll, error) {
	var out []model.Payroll
	for _, p := range r.payrolls {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubEmployeeRepo) UpdatePayroll(_ context.Context, p *model.Payroll) error {
	r.payrolls[p.ID] = p
	return nil
}

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

func buildEmployeeSvc() (service.EmployeeService, *stubEmployeeRepo, *stubStoreRepo) {
	repo := newStubEmployeeRepo()
	stores := newStubStoreRepo()
	return service.NewEmployeeService(repo, stores), repo, stores
}

func seedEmployee(t *testing.T, svc service.EmployeeService, stores *stubStoreRepo, salary int64) *dto.EmployeeResponse {
	t.Helper()
	store := stores.seed("Matriz")
	resp, err := svc.Create(context.Background(), dto.CreateEmployeeRequest{
		Name:       "Paula Lima",
		CPF:        "98765432100",
		Cargo:      model.CargoVendedor,
		HiredAt:    "2024-03-01",
		BaseSalary: decimal.NewFromInt(salary),
		StoreID:    store.ID.String(),
	})
	require.NoError(t, err)
	return resp
}

func TestFolhaPagamento_SalarioLiquido(t *testing.T) {
	svc, _, stores := buildEmployeeSvc()
	employee := seedEmployee(t, svc, stores, 2000)

	// net = 2000 + 350 + 100 - 150 = 2300
	resp, err := svc.CreatePayroll(context.Background(), dto.CreatePayrollRequest{
		EmployeeID: employee.ID,
		Year:       2026,
		Month:      8,
		Commission: decimal.NewFromInt(350),
		Bonus:      decimal.NewFromInt(100),
		Deductions: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(2300)))
	assert.True(t, resp.BaseSalary.Equal(decimal.NewFromInt(2000)))
	assert.False(t, resp.Paid)
}

func TestFolhaPagamento_PeriodoDuplicado(t *testing.T) {
	svc, _, stores := buildEmployeeSvc()
	employee := seedEmployee(t, svc, stores, 1800)

	_, err := svc.CreatePayroll(context.Background(), dto.CreatePayrollRequest{
		EmployeeID: employee.ID,
		Year:       2026,
		Month:      7,
	})
	require.NoError(t, err)

	_, err = svc.CreatePayroll(context.Background(), dto.CreatePayrollRequest{
		EmployeeID: employee.ID,
		Year:       2026,
		Month:      7,
	})
	assert.ErrorContains(t, err, "já lançada para este período")
}

func TestFolhaPagamento_MarcarComoPaga(t *testing.T) {
	svc, _, stores := buildEmployeeSvc()
	employee := seedEmployee(t, svc, stores, 2200)

	created, err := svc.CreatePayroll(context.Background(), dto.CreatePayrollRequest{
		EmployeeID: employee.ID,
		Year:       2026,
		Month:      6,
	})
	require.NoError(t, err)

	paid := true
	updated, err := svc.UpdatePayroll(context.Background(), uuid.MustParse(created.ID), dto.UpdatePayrollRequest{
		Paid: &paid,
	})
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.NotNil(t, updated.PaidAt)
}
