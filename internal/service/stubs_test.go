package service_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

// ── In-memory stubs ──────────────────────────────────────────────────────────
// All stubs return a nil *gorm.DB from DB(), which makes runTx call the
// transaction body directly.

type stubTillRepo struct {
	sessions  map[uuid.UUID]*model.CashTillSession
	flows     []model.CashFlow
	cashSales map[uuid.UUID]decimal.Decimal
}

func newStubTillRepo() *stubTillRepo {
	return &stubTillRepo{
		sessions:  make(map[uuid.UUID]*model.CashTillSession),
		cashSales: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (r *stubTillRepo) CreateSessionTx(_ *gorm.DB, s *model.CashTillSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubTillRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.CashTillSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubTillRepo) FindOpenByStore(_ context.Context, storeID uuid.UUID) (*model.CashTillSession, error) {
	for _, s := range r.sessions {
		if s.StoreID == storeID && s.Status == model.TillOpen {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTillRepo) FindOpenByUser(_ context.Context, userID uuid.UUID) (*model.CashTillSession, error) {
	for _, s := range r.sessions {
		if s.OpenedByID == userID && s.Status == model.TillOpen {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTillRepo) FindOpenByStoreTx(_ *gorm.DB, storeID uuid.UUID) (*model.CashTillSession, error) {
	return r.FindOpenByStore(context.Background(), storeID)
}

func (r *stubTillRepo) UpdateSessionTx(_ *gorm.DB, s *model.CashTillSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubTillRepo) ListSessions(_ context.Context, storeID *uuid.UUID, _ int) ([]model.CashTillSession, error) {
	var out []model.CashTillSession
	for _, s := range r.sessions {
		if storeID == nil || s.StoreID == *storeID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.After(out[j].OpenedAt) })
	return out, nil
}

func (r *stubTillRepo) SumCashSalesTx(_ *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	total, ok := r.cashSales[sessionID]
	if !ok {
		return decimal.Zero, nil
	}
	return total, nil
}

func (r *stubTillRepo) CreateCashFlowTx(_ *gorm.DB, f *model.CashFlow) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.flows = append(r.flows, *f)
	return nil
}

func (r *stubTillRepo) ListCashFlows(_ context.Context, _ *uuid.UUID, _, _ string) ([]model.CashFlow, error) {
	return r.flows, nil
}

func (r *stubTillRepo) DB() *gorm.DB { return nil }

var _ repository.TillRepository = (*stubTillRepo)(nil)

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if filter.StoreID != "" && s.StoreID.String() != filter.StoreID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) CountBySession(_ context.Context, sessionID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.CashTillSessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stockKey struct {
	store   uuid.UUID
	product uuid.UUID
}

type stubStockRepo struct {
	quantities map[stockKey]int
	movements  []model.StockMovement
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{quantities: make(map[stockKey]int)}
}

func (r *stubStockRepo) seed(storeID, productID uuid.UUID, qty int) {
	r.quantities[stockKey{storeID, productID}] = qty
}

func (r *stubStockRepo) FindQuantity(_ context.Context, storeID, productID uuid.UUID) (int, error) {
	return r.quantities[stockKey{storeID, productID}], nil
}

func (r *stubStockRepo) ListForStore(_ context.Context, storeID uuid.UUID, stockLevel string) ([]model.StoreProduct, error) {
	var out []model.StoreProduct
	for k, q := range r.quantities {
		if k.store != storeID {
			continue
		}
		switch stockLevel {
		case "low":
			if q <= 0 || q >= 5 {
				continue
			}
		case "out":
			if q != 0 {
				continue
			}
		case "normal":
			if q < 5 {
				continue
			}
		}
		out = append(out, model.StoreProduct{StoreID: k.store, ProductID: k.product, Quantity: q})
	}
	return out, nil
}

func (r *stubStockRepo) ListForProduct(_ context.Context, productID uuid.UUID) ([]model.StoreProduct, error) {
	var out []model.StoreProduct
	for k, q := range r.quantities {
		if k.product == productID {
			out = append(out, model.StoreProduct{StoreID: k.store, ProductID: k.product, Quantity: q})
		}
	}
	return out, nil
}

func (r *stubStockRepo) TotalQuantity(_ context.Context, productID uuid.UUID) (int, error) {
	total := 0
	for k, q := range r.quantities {
		if k.product == productID {
			total += q
		}
	}
	return total, nil
}

func (r *stubStockRepo) DecrementTx(_ *gorm.DB, storeID, productID uuid.UUID, qty int) (bool, error) {
	key := stockKey{storeID, productID}
	if r.quantities[key] < qty {
		return false, nil
	}
	r.quantities[key] -= qty
	return true, nil
}

func (r *stubStockRepo) IncrementTx(_ *gorm.DB, storeID, productID uuid.UUID, qty int) error {
	r.quantities[stockKey{storeID, productID}] += qty
	return nil
}

func (r *stubStockRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		// A wall clock in a non-UTC zone, like the database would hand back.
		m.CreatedAt = time.Date(2026, 3, 10, 9, 30, 0, 0, time.FixedZone("BRT", -3*60*60))
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubStockRepo) ListMovements(_ context.Context, _ dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockRepository = (*stubStockRepo)(nil)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(name string, code string, price decimal.Decimal) *model.Product {
	p := &model.Product{
		ID:         uuid.New(),
		Name:       name,
		Code:       code,
		Price:      price,
		CategoryID: uuid.New(),
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	return r.CreateTx(nil, p)
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) NextCodeTx(_ *gorm.DB) (string, error) {
	max := 0
	for _, p := range r.products {
		if n, err := strconv.Atoi(p.Code); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%02d", max+1), nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubSellerRepo struct {
	sellers map[uuid.UUID]*model.Seller
}

func newStubSellerRepo() *stubSellerRepo {
	return &stubSellerRepo{sellers: make(map[uuid.UUID]*model.Seller)}
}

func (r *stubSellerRepo) seed(name string, storeID uuid.UUID) *model.Seller {
	s := &model.Seller{ID: uuid.New(), Name: name, StoreID: storeID}
	r.sellers[s.ID] = s
	return s
}

func (r *stubSellerRepo) Create(_ context.Context, s *model.Seller) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sellers[s.ID] = s
	return nil
}

func (r *stubSellerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Seller, error) {
	s, ok := r.sellers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSellerRepo) List(_ context.Context, storeID *uuid.UUID) ([]model.Seller, error) {
	var out []model.Seller
	for _, s := range r.sellers {
		if storeID == nil || s.StoreID == *storeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSellerRepo) Update(_ context.Context, s *model.Seller) error {
	r.sellers[s.ID] = s
	return nil
}

func (r *stubSellerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sellers, id)
	return nil
}

var _ repository.SellerRepository = (*stubSellerRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByCPF(_ context.Context, cpf string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.CPF == cpf {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) seed(name string) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name, Active: true}
	r.categories[c.ID] = c
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		c.Active = false
	}
	return nil
}

func (r *stubCategoryRepo) CountProducts(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

type stubStoreRepo struct {
	stores map[uuid.UUID]*model.Store
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: make(map[uuid.UUID]*model.Store)}
}

func (r *stubStoreRepo) seed(name string) *model.Store {
	s := &model.Store{ID: uuid.New(), Name: name}
	r.stores[s.ID] = s
	return s
}

func (r *stubStoreRepo) Create(_ context.Context, s *model.Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStoreRepo) List(_ context.Context) ([]model.Store, error) {
	var out []model.Store
	for _, s := range r.stores {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubStoreRepo) Update(_ context.Context, s *model.Store) error {
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.stores, id)
	return nil
}

var _ repository.StoreRepository = (*stubStoreRepo)(nil)
