package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/service"
)

func buildStockSvc() (service.StockService, *stubStockRepo, *stubProductRepo, *stubStoreRepo) {
	stockRepo := newStubStockRepo()
	products := newStubProductRepo()
	stores := newStubStoreRepo()
	return service.NewStockService(stockRepo, products, stores), stockRepo, products, stores
}

func TestMovimentoEstoque_Entrada(t *testing.T) {
	svc, stockRepo, products, stores := buildStockSvc()
	store := stores.seed("Matriz")
	p := products.seed("Armação acetato", "01", decimal.NewFromInt(90))
	actor := gerenteActor(store.ID)

	resp, err := svc.Record(context.Background(), actor, dto.StockMovementRequest{
		ProductID:    p.ID.String(),
		StoreID:      store.ID.String(),
		Quantity:     5,
		MovementType: model.MovementEntrada,
		Reason:       "Compra do fornecedor",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MovementEntrada, resp.MovementType)

	qty, _ := stockRepo.FindQuantity(context.Background(), store.ID, p.ID)
	assert.Equal(t, 5, qty)
	require.Len(t, stockRepo.movements, 1)
	assert.Equal(t, "Compra do fornecedor", stockRepo.movements[0].Reason)
}

func TestMovimentoEstoque_SaidaComSaldo(t *testing.T) {
	svc, stockRepo, products, stores := buildStockSvc()
	store := stores.seed("Matriz")
	p := products.seed("Lente antirreflexo", "01", decimal.NewFromInt(200))
	stockRepo.seed(store.ID, p.ID, 8)
	actor := gerenteActor(store.ID)

	_, err := svc.Record(context.Background(), actor, dto.StockMovementRequest{
		ProductID:    p.ID.String(),
		StoreID:      store.ID.String(),
		Quantity:     3,
		MovementType: model.MovementSaida,
		Reason:       "Avaria no mostruário",
	})
	require.NoError(t, err)

	qty, _ := stockRepo.FindQuantity(context.Background(), store.ID, p.ID)
	assert.Equal(t, 5, qty)
}

func TestMovimentoEstoque_SaidaSemSaldoRejeitada(t *testing.T) {
	svc, stockRepo, products, stores := buildStockSvc()
	store := stores.seed("Filial Centro")
	p := products.seed("Estojo rígido", "01", decimal.NewFromInt(20))
	stockRepo.seed(store.ID, p.ID, 2)
	actor := gerenteActor(store.ID)

	// Stock never goes negative: a saida bigger than the balance is rejected
	// and nothing is recorded.
	_, err := svc.Record(context.Background(), actor, dto.StockMovementRequest{
		ProductID:    p.ID.String(),
		StoreID:      store.ID.String(),
		Quantity:     3,
		MovementType: model.MovementSaida,
		Reason:       "Transferência",
	})

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)

	qty, _ := stockRepo.FindQuantity(context.Background(), store.ID, p.ID)
	assert.Equal(t, 2, qty)
	assert.Empty(t, stockRepo.movements)
}

func TestMovimentoEstoque_DataEmUTC(t *testing.T) {
	svc, stockRepo, products, stores := buildStockSvc()
	store := stores.seed("Matriz")
	p := products.seed("Lente de contato", "01", decimal.NewFromInt(120))
	actor := gerenteActor(store.ID)

	resp, err := svc.Record(context.Background(), actor, dto.StockMovementRequest{
		ProductID:    p.ID.String(),
		StoreID:      store.ID.String(),
		Quantity:     4,
		MovementType: model.MovementEntrada,
		Reason:       "Reposição",
	})
	require.NoError(t, err)

	// The response timestamp is RFC 3339 in UTC and denotes the same instant
	// as the stored movement, whatever zone the record carries.
	parsed, err := time.Parse(time.RFC3339, resp.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
	require.Len(t, stockRepo.movements, 1)
	assert.True(t, parsed.Equal(stockRepo.movements[0].CreatedAt))
}

func TestEstoquePorLoja_FiltroPorNivel(t *testing.T) {
	svc, stockRepo, products, stores := buildStockSvc()
	store := stores.seed("Matriz")
	zerado := products.seed("Lente fotossensível", "01", decimal.NewFromInt(300))
	baixo := products.seed("Armação metal", "02", decimal.NewFromInt(150))
	normal := products.seed("Estojo rígido", "03", decimal.NewFromInt(20))
	stockRepo.seed(store.ID, zerado.ID, 0)
	stockRepo.seed(store.ID, baixo.ID, 2)
	stockRepo.seed(store.ID, normal.ID, 30)
	actor := gerenteActor(store.ID)

	out, err := svc.ListForStore(context.Background(), actor, nil, "out")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, zerado.ID.String(), out[0].ProductID)

	low, err := svc.ListForStore(context.Background(), actor, nil, "low")
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, baixo.ID.String(), low[0].ProductID)

	all, err := svc.ListForStore(context.Background(), actor, nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListForStore(context.Background(), actor, nil, "whatever")
	assert.ErrorContains(t, err, "stock_level")
}

func TestMovimentoEstoque_GerenteRestritoAPropriaLoja(t *testing.T) {
	svc, stockRepo, products, stores := buildStockSvc()
	mine := stores.seed("Minha loja")
	other := stores.seed("Outra loja")
	p := products.seed("Cordão retrátil", "01", decimal.NewFromInt(12))
	stockRepo.seed(other.ID, p.ID, 10)
	actor := gerenteActor(mine.ID)

	_, err := svc.Record(context.Background(), actor, dto.StockMovementRequest{
		ProductID:    p.ID.String(),
		StoreID:      other.ID.String(),
		Quantity:     1,
		MovementType: model.MovementSaida,
		Reason:       "Teste",
	})
	assert.ErrorContains(t, err, "própria loja")
}
