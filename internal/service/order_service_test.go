package service_test

import (
	"context"
	"sort"
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

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.StoreID != "" && o.StoreID.String() != filter.StoreID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func buildOrderSvc() (service.OrderService, *stubOrderRepo, *stubSellerRepo) {
	orderRepo := newStubOrderRepo()
	sellerRepo := newStubSellerRepo()
	return service.NewOrderService(orderRepo, sellerRepo), orderRepo, sellerRepo
}

func TestOrdemServico_Criar(t *testing.T) {
	svc, _, sellerRepo := buildOrderSvc()
	storeID := uuid.New()
	seller := sellerRepo.seed("Carlos", storeID)
	sellerID := seller.ID.String()

	sphere := decimal.RequireFromString("-1.75")
	resp, err := svc.Create(context.Background(), gerenteActor(storeID), dto.CreateOrderRequest{
		CustomerName: "João Pereira",
		SellerID:     &sellerID,
		RightEye:     dto.EyeMeasurement{Sphere: &sphere},
		TotalPrice:   decimal.RequireFromString("480.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderRealizando, resp.Status)
	assert.Equal(t, "João Pereira", resp.CustomerName)
	require.NotNil(t, resp.RightEye.Sphere)
	assert.True(t, resp.RightEye.Sphere.Equal(sphere))
}

func TestOrdemServico_VendedorDeOutraLoja(t *testing.T) {
	svc, _, sellerRepo := buildOrderSvc()
	seller := sellerRepo.seed("Carlos", uuid.New())
	sellerID := seller.ID.String()

	_, err := svc.Create(context.Background(), gerenteActor(uuid.New()), dto.CreateOrderRequest{
		CustomerName: "João Pereira",
		SellerID:     &sellerID,
		TotalPrice:   decimal.NewFromInt(100),
	})
	assert.ErrorContains(t, err, "não pertence à loja")
}

func TestOrdemServico_TransicaoDeStatus(t *testing.T) {
	svc, _, _ := buildOrderSvc()
	storeID := uuid.New()

	resp, err := svc.Create(context.Background(), gerenteActor(storeID), dto.CreateOrderRequest{
		CustomerName: "Ana Lima",
		TotalPrice:   decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// realizando → entregue pula uma etapa
	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateOrderStatusRequest{Status: model.OrderEntregue})
	assert.ErrorContains(t, err, "Transição de status inválida")

	resp, err = svc.UpdateStatus(context.Background(), id, dto.UpdateOrderStatusRequest{Status: model.OrderPronto})
	require.NoError(t, err)
	assert.Equal(t, model.OrderPronto, resp.Status)

	resp, err = svc.UpdateStatus(context.Background(), id, dto.UpdateOrderStatusRequest{Status: model.OrderEntregue})
	require.NoError(t, err)
	assert.Equal(t, model.OrderEntregue, resp.Status)

	// entregue é terminal
	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateOrderStatusRequest{Status: model.OrderPronto})
	assert.ErrorContains(t, err, "Transição de status inválida")
}

func TestOrdemServico_AtualizarEntregueRejeitado(t *testing.T) {
	svc, orderRepo, _ := buildOrderSvc()
	storeID := uuid.New()

	resp, err := svc.Create(context.Background(), gerenteActor(storeID), dto.CreateOrderRequest{
		CustomerName: "Ana Lima",
		TotalPrice:   decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)
	orderRepo.orders[id].Status = model.OrderEntregue

	notes := "troca de lente"
	_, err = svc.Update(context.Background(), id, dto.UpdateOrderRequest{Notes: &notes})
	assert.ErrorContains(t, err, "entregue não pode ser alterada")
}
