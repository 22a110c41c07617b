package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/service"
)

func buildTillSvc() (service.TillService, *stubTillRepo) {
	tillRepo := newStubTillRepo()
	return service.NewTillService(tillRepo, newStubSaleRepo()), tillRepo
}

func gerenteActor(storeID uuid.UUID) service.Actor {
	return service.Actor{UserID: uuid.New(), Role: model.RoleGerente, StoreID: &storeID}
}

func TestAbrirCaixa(t *testing.T) {
	svc, tillRepo := buildTillSvc()
	actor := gerenteActor(uuid.New())

	resp, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{
		InitialAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TillOpen, resp.Status)
	assert.True(t, resp.InitialAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, actor.UserID.String(), resp.OpenedByID)

	// Opening registers the initial amount as an inflow ledger entry.
	require.Len(t, tillRepo.flows, 1)
	assert.Equal(t, model.MovementEntrada, tillRepo.flows[0].FlowType)
	assert.True(t, tillRepo.flows[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestAbrirCaixa_UsuarioJaTemCaixaAberto(t *testing.T) {
	svc, _ := buildTillSvc()
	actor := gerenteActor(uuid.New())

	_, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.NewFromInt(50)})
	require.NoError(t, err)

	// Same user, different store — still rejected.
	otherStore := uuid.New()
	actor.StoreID = &otherStore
	_, err = svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.Zero})
	assert.ErrorContains(t, err, "Você já possui um caixa aberto")
}

func TestAbrirCaixa_LojaJaTemCaixaAberto(t *testing.T) {
	svc, _ := buildTillSvc()
	storeID := uuid.New()

	_, err := svc.Open(context.Background(), gerenteActor(storeID), dto.OpenTillRequest{InitialAmount: decimal.Zero})
	require.NoError(t, err)

	// Different user, same store.
	_, err = svc.Open(context.Background(), gerenteActor(storeID), dto.OpenTillRequest{InitialAmount: decimal.Zero})
	assert.ErrorContains(t, err, "Já existe um caixa aberto para esta loja")
}

func TestAbrirCaixa_AdminPrecisaInformarLoja(t *testing.T) {
	svc, _ := buildTillSvc()
	admin := service.Actor{UserID: uuid.New(), Role: model.RoleAdmin}

	_, err := svc.Open(context.Background(), admin, dto.OpenTillRequest{InitialAmount: decimal.Zero})
	assert.ErrorContains(t, err, "store_id é obrigatório")

	storeID := uuid.New().String()
	resp, err := svc.Open(context.Background(), admin, dto.OpenTillRequest{StoreID: &storeID, InitialAmount: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, storeID, resp.StoreID)
}

func TestFecharCaixa_CalculaDiferenca(t *testing.T) {
	svc, tillRepo := buildTillSvc()
	actor := gerenteActor(uuid.New())

	opened, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	// 150 in cash sales during the session → expected 100 + 150 = 250.
	tillRepo.cashSales[sessionID] = decimal.NewFromInt(150)

	resp, err := svc.Close(context.Background(), actor, sessionID, dto.CloseTillRequest{
		FinalAmountReported: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TillClosed, resp.Status)
	require.NotNil(t, resp.FinalAmountCalculated)
	assert.True(t, resp.FinalAmountCalculated.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, resp.Difference)
	assert.True(t, resp.Difference.IsZero())
	assert.NotNil(t, resp.ClosedAt)
}

func TestFecharCaixa_FaltaNoCaixa(t *testing.T) {
	svc, tillRepo := buildTillSvc()
	actor := gerenteActor(uuid.New())

	opened, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)
	tillRepo.cashSales[sessionID] = decimal.NewFromInt(150)

	// Drawer reports 240 against an expected 250 → difference -10.
	resp, err := svc.Close(context.Background(), actor, sessionID, dto.CloseTillRequest{
		FinalAmountReported: decimal.NewFromInt(240),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Difference)
	assert.True(t, resp.Difference.Equal(decimal.NewFromInt(-10)))
}

func TestFecharCaixa_JaFechado(t *testing.T) {
	svc, _ := buildTillSvc()
	actor := gerenteActor(uuid.New())

	opened, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.Zero})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	_, err = svc.Close(context.Background(), actor, sessionID, dto.CloseTillRequest{FinalAmountReported: decimal.Zero})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), actor, sessionID, dto.CloseTillRequest{FinalAmountReported: decimal.Zero})
	assert.ErrorContains(t, err, "Caixa já está fechado")
}

// staleReadTillRepo serves session lookups from a copy that still reads
// aberto, the view a second caller holds while another close commits first.
type staleReadTillRepo struct {
	*stubTillRepo
}

func (r *staleReadTillRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashTillSession, error) {
	s, err := r.stubTillRepo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stale := *s
	stale.Status = model.TillOpen
	return &stale, nil
}

func TestFecharCaixa_FechamentoConcorrenteRejeitado(t *testing.T) {
	tillRepo := newStubTillRepo()
	svc := service.NewTillService(&staleReadTillRepo{tillRepo}, newStubSaleRepo())
	actor := gerenteActor(uuid.New())

	opened, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	_, err = svc.Close(context.Background(), actor, sessionID, dto.CloseTillRequest{
		FinalAmountReported: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// The second close still sees the session as open, but the re-check
	// inside the transaction finds it already closed and nothing is written.
	_, err = svc.Close(context.Background(), actor, sessionID, dto.CloseTillRequest{
		FinalAmountReported: decimal.NewFromInt(999),
	})
	assert.ErrorContains(t, err, "Caixa já está fechado")

	stored := tillRepo.sessions[sessionID]
	assert.Equal(t, model.TillClosed, stored.Status)
	require.NotNil(t, stored.FinalAmountReported)
	assert.True(t, stored.FinalAmountReported.Equal(decimal.NewFromInt(100)))
}

func TestFecharCaixa_GerenteDeOutraLoja(t *testing.T) {
	svc, _ := buildTillSvc()
	owner := gerenteActor(uuid.New())

	opened, err := svc.Open(context.Background(), owner, dto.OpenTillRequest{InitialAmount: decimal.Zero})
	require.NoError(t, err)

	intruder := gerenteActor(uuid.New())
	_, err = svc.Close(context.Background(), intruder, uuid.MustParse(opened.ID), dto.CloseTillRequest{
		FinalAmountReported: decimal.Zero,
	})
	assert.ErrorContains(t, err, "própria loja")
}

func TestStatusCaixa(t *testing.T) {
	svc, tillRepo := buildTillSvc()
	actor := gerenteActor(uuid.New())

	status, err := svc.Status(context.Background(), actor, nil)
	require.NoError(t, err)
	assert.False(t, status.Open)
	assert.Nil(t, status.Session)

	opened, err := svc.Open(context.Background(), actor, dto.OpenTillRequest{InitialAmount: decimal.NewFromInt(80)})
	require.NoError(t, err)
	tillRepo.cashSales[uuid.MustParse(opened.ID)] = decimal.NewFromInt(20)

	status, err = svc.Status(context.Background(), actor, nil)
	require.NoError(t, err)
	assert.True(t, status.Open)
	require.NotNil(t, status.Session)
	assert.True(t, status.CashExpected.Equal(decimal.NewFromInt(100)))
}

func TestStatusCaixa_AdminResolvePeloProprioUsuario(t *testing.T) {
	svc, _ := buildTillSvc()
	admin := service.Actor{UserID: uuid.New(), Role: model.RoleAdmin}
	storeID := uuid.New().String()

	opened, err := svc.Open(context.Background(), admin, dto.OpenTillRequest{
		StoreID:       &storeID,
		InitialAmount: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	// No store_id on the status call: the admin's active session is found by
	// who opened it, the same rule the sale flow applies.
	status, err := svc.Status(context.Background(), admin, nil)
	require.NoError(t, err)
	assert.True(t, status.Open)
	require.NotNil(t, status.Session)
	assert.Equal(t, opened.ID, status.Session.ID)
}
