package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type saleFixture struct {
	svc       service.SaleService
	saleRepo  *stubSaleRepo
	stockRepo *stubStockRepo
	tillRepo  *stubTillRepo
	products  *stubProductRepo
	sellers   *stubSellerRepo
	customers *stubCustomerRepo
	storeID   uuid.UUID
	actor     service.Actor
	seller    *model.Seller
}

// newSaleFixture wires the sale engine against in-memory stubs, with an open
// till session for the gerente's store.
func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	f := &saleFixture{
		saleRepo:  newStubSaleRepo(),
		stockRepo: newStubStockRepo(),
		tillRepo:  newStubTillRepo(),
		products:  newStubProductRepo(),
		sellers:   newStubSellerRepo(),
		customers: newStubCustomerRepo(),
		storeID:   uuid.New(),
	}
	f.actor = gerenteActor(f.storeID)
	f.seller = f.sellers.seed("Maria", f.storeID)
	f.svc = service.NewSaleService(
		f.saleRepo, f.stockRepo, f.tillRepo, f.products, f.customers, f.sellers, nil,
	)
	return f
}

func (f *saleFixture) openSession(t *testing.T) *model.CashTillSession {
	t.Helper()
	session := &model.CashTillSession{
		StoreID:       f.storeID,
		OpenedByID:    f.actor.UserID,
		OpenedAt:      time.Now(),
		InitialAmount: decimal.NewFromInt(100),
		Status:        model.TillOpen,
	}
	require.NoError(t, f.tillRepo.CreateSessionTx(nil, session))
	return session
}

func TestRegistrarVenda_SemCaixaAberto(t *testing.T) {
	f := newSaleFixture(t)
	p := f.products.seed("Armação Ray-Ban", "01", decimal.NewFromInt(50))
	f.stockRepo.seed(f.storeID, p.ID, 10)

	_, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      f.seller.ID.String(),
		PaymentMethod: model.PaymentDinheiro,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	var noSession *apperr.NoOpenSessionError
	assert.ErrorAs(t, err, &noSession)
}

func TestRegistrarVenda_TotalEhSomaDosItens(t *testing.T) {
	f := newSaleFixture(t)
	f.openSession(t)
	p1 := f.products.seed("Lente CR-39", "01", decimal.NewFromInt(50))
	p2 := f.products.seed("Estojo", "02", decimal.NewFromInt(25))
	f.stockRepo.seed(f.storeID, p1.ID, 10)
	f.stockRepo.seed(f.storeID, p2.ID, 10)

	resp, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      f.seller.ID.String(),
		PaymentMethod: model.PaymentPix,
		Items: []dto.SaleItemRequest{
			{ProductID: p1.ID.String(), Quantity: 2}, // 100
			{ProductID: p2.ID.String(), Quantity: 2}, // 50
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(150)))
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].TotalPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Items[1].TotalPrice.Equal(decimal.NewFromInt(50)))
}

func TestRegistrarVenda_BaixaEstoqueERegistraMovimento(t *testing.T) {
	f := newSaleFixture(t)
	session := f.openSession(t)
	p := f.products.seed("Óculos de sol", "01", decimal.NewFromInt(50))
	f.stockRepo.seed(f.storeID, p.ID, 10)

	resp, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      f.seller.ID.String(),
		PaymentMethod: model.PaymentDinheiro,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID.String(), resp.CashTillSessionID)

	// 10 − 3 = 7 on hand.
	qty, err := f.stockRepo.FindQuantity(context.Background(), f.storeID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	// Exactly one saida movement referencing the sale.
	require.Len(t, f.stockRepo.movements, 1)
	mov := f.stockRepo.movements[0]
	assert.Equal(t, model.MovementSaida, mov.MovementType)
	assert.Equal(t, 3, mov.Quantity)
	assert.Contains(t, mov.Reason, "Venda #")

	// One entrada cash flow entry for the full amount.
	require.Len(t, f.tillRepo.flows, 1)
	flow := f.tillRepo.flows[0]
	assert.Equal(t, model.MovementEntrada, flow.FlowType)
	assert.True(t, flow.Amount.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, flow.CashTillSessionID)
	assert.Equal(t, session.ID, *flow.CashTillSessionID)
}

func TestRegistrarVenda_EstoqueInsuficiente(t *testing.T) {
	f := newSaleFixture(t)
	f.openSession(t)
	p := f.products.seed("Armação infantil", "01", decimal.NewFromInt(80))
	f.stockRepo.seed(f.storeID, p.ID, 2)

	_, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      f.seller.ID.String(),
		PaymentMethod: model.PaymentDinheiro,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 5}},
	})

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// Nothing moved: quantity intact, no movements, no cash flow.
	qty, _ := f.stockRepo.FindQuantity(context.Background(), f.storeID, p.ID)
	assert.Equal(t, 2, qty)
	assert.Empty(t, f.stockRepo.movements)
	assert.Empty(t, f.tillRepo.flows)
}

func TestRegistrarVenda_PrecoCongeladoNoItem(t *testing.T) {
	f := newSaleFixture(t)
	f.openSession(t)
	p := f.products.seed("Lente multifocal", "01", decimal.NewFromInt(300))
	f.stockRepo.seed(f.storeID, p.ID, 5)

	resp, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      f.seller.ID.String(),
		PaymentMethod: model.PaymentCartaoCredito,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	// Price changes after the sale must not affect the stored item.
	p.Price = decimal.NewFromInt(999)
	stored, err := f.saleRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromInt(300)))
}

func TestRegistrarVenda_VendedorDeOutraLoja(t *testing.T) {
	f := newSaleFixture(t)
	f.openSession(t)
	outsider := f.sellers.seed("João", uuid.New())
	p := f.products.seed("Cordão", "01", decimal.NewFromInt(10))
	f.stockRepo.seed(f.storeID, p.ID, 5)

	_, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      outsider.ID.String(),
		PaymentMethod: model.PaymentDinheiro,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "vendedor não pertence à loja")
}

func TestRegistrarVenda_AdminUsaSessaoQueAbriu(t *testing.T) {
	f := newSaleFixture(t)
	admin := service.Actor{UserID: uuid.New(), Role: model.RoleAdmin}

	adminStore := uuid.New()
	session := &model.CashTillSession{
		StoreID:       adminStore,
		OpenedByID:    admin.UserID,
		OpenedAt:      time.Now(),
		InitialAmount: decimal.Zero,
		Status:        model.TillOpen,
	}
	require.NoError(t, f.tillRepo.CreateSessionTx(nil, session))

	seller := f.sellers.seed("Ana", adminStore)
	p := f.products.seed("Lente de contato", "01", decimal.NewFromInt(120))
	f.stockRepo.seed(adminStore, p.ID, 3)

	resp, err := f.svc.Create(context.Background(), admin, dto.CreateSaleRequest{
		SellerID:      seller.ID.String(),
		PaymentMethod: model.PaymentCartaoDebito,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID.String(), resp.CashTillSessionID)
	assert.Equal(t, adminStore.String(), resp.StoreID)
}

func TestRegistrarVenda_ClienteCadastrado(t *testing.T) {
	f := newSaleFixture(t)
	f.openSession(t)
	p := f.products.seed("Limpa-lentes", "01", decimal.NewFromInt(15))
	f.stockRepo.seed(f.storeID, p.ID, 10)

	customer := &model.Customer{Name: "Carlos Souza", CPF: "12345678901", Phone: "11999990000"}
	require.NoError(t, f.customers.Create(context.Background(), customer))
	cid := customer.ID.String()

	resp, err := f.svc.Create(context.Background(), f.actor, dto.CreateSaleRequest{
		SellerID:      f.seller.ID.String(),
		CustomerID:    &cid,
		PaymentMethod: model.PaymentDinheiro,
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Souza", resp.CustomerName)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, cid, *resp.CustomerID)
}
