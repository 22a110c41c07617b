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

type TillService interface {
	Open(ctx context.Context, actor Actor, req dto.OpenTillRequest) (*dto.TillSessionResponse, error)
	Close(ctx context.Context, actor Actor, sessionID uuid.UUID, req dto.CloseTillRequest) (*dto.TillSessionResponse, error)
	Status(ctx context.Context, actor Actor, requestedStore *string) (*dto.TillStatusResponse, error)
	FindSession(ctx context.Context, id uuid.UUID) (*dto.TillSessionResponse, error)
	ListSessions(ctx context.Context, actor Actor, requestedStore *string, limit int) ([]dto.TillSessionResponse, error)
}

type tillService struct {
	repo     repository.TillRepository
	saleRepo repository.SaleRepository
}

func NewTillService(repo repository.TillRepository, saleRepo repository.SaleRepository) TillService {
	return &tillService{repo: repo, saleRepo: saleRepo}
}

// Open starts a till session after checking both exclusivity rules: the
// opener must not hold another open session anywhere, and the store must not
// already have one. Both checks run before the insert; the partial unique
// indexes close the race window.
func (s *tillService) Open(ctx context.Context, actor Actor, req dto.OpenTillRequest) (*dto.TillSessionResponse, error) {
	storeID, err := actor.EffectiveStore(req.StoreID)
	if err != nil {
		return nil, err
	}
	if req.InitialAmount.IsNegative() {
		return nil, apperr.Validationf("valor inicial não pode ser negativo")
	}

	if _, err := s.repo.FindOpenByUser(ctx, actor.UserID); err == nil {
		return nil, apperr.Conflictf("Você já possui um caixa aberto")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindOpenByStore(ctx, storeID); err == nil {
		return nil, apperr.Conflictf("Já existe um caixa aberto para esta loja")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := model.CashTillSession{
		StoreID:       storeID,
		OpenedByID:    actor.UserID,
		OpenedAt:      time.Now(),
		InitialAmount: req.InitialAmount,
		Status:        model.TillOpen,
		Notes:         req.Notes,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateSessionTx(tx, &session); err != nil {
			return err
		}
		if req.InitialAmount.IsPositive() {
			flow := model.CashFlow{
				StoreID:           storeID,
				CashTillSessionID: &session.ID,
				Amount:            req.InitialAmount,
				FlowType:          model.MovementEntrada,
				Description:       "Abertura de caixa",
			}
			return s.repo.CreateCashFlowTx(tx, &flow)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return sessionToResponse(&session), nil
}

// Close performs the single aberto → fechado transition:
//
//	final_amount_calculated = initial_amount + Σ(cash sales of the session)
//	difference              = reported − calculated
//
// A closed session is terminal; closing it again is a conflict.
func (s *tillService) Close(ctx context.Context, actor Actor, sessionID uuid.UUID, req dto.CloseTillRequest) (*dto.TillSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sessão de caixa")
		}
		return nil, err
	}

	if !actor.IsAdmin() && (actor.StoreID == nil || *actor.StoreID != session.StoreID) {
		return nil, apperr.Validationf("gerente só pode fechar o caixa da própria loja")
	}
	if session.Status != model.TillOpen {
		return nil, apperr.InvalidState("Caixa já está fechado")
	}
	if req.FinalAmountReported.IsNegative() {
		return nil, apperr.Validationf("valor informado não pode ser negativo")
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-check under lock: a concurrent close may have committed between
		// the read above and this transaction.
		locked, err := s.repo.FindOpenByStoreTx(tx, session.StoreID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.InvalidState("Caixa já está fechado")
			}
			return err
		}
		if locked.ID != session.ID {
			return apperr.InvalidState("Caixa já está fechado")
		}

		cashSales, err := s.repo.SumCashSalesTx(tx, session.ID)
		if err != nil {
			return err
		}
		calculated := session.InitialAmount.Add(cashSales)
		difference := req.FinalAmountReported.Sub(calculated)

		session.Status = model.TillClosed
		session.ClosedAt = &now
		session.ClosedByID = &actor.UserID
		session.FinalAmountReported = &req.FinalAmountReported
		session.FinalAmountCalculated = &calculated
		session.Difference = &difference
		if req.Notes != nil {
			session.Notes = req.Notes
		}

		return s.repo.UpdateSessionTx(tx, session)
	})
	if txErr != nil {
		return nil, txErr
	}

	return sessionToResponse(session), nil
}

// Status resolves the caller's active session the same way the sale engine
// does: admins by opener identity, gerentes by their store.
func (s *tillService) Status(ctx context.Context, actor Actor, requestedStore *string) (*dto.TillStatusResponse, error) {
	var session *model.CashTillSession
	var err error
	if actor.IsAdmin() {
		session, err = s.repo.FindOpenByUser(ctx, actor.UserID)
	} else {
		var storeID uuid.UUID
		storeID, err = actor.EffectiveStore(requestedStore)
		if err != nil {
			return nil, err
		}
		session, err = s.repo.FindOpenByStore(ctx, storeID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.TillStatusResponse{Open: false}, nil
		}
		return nil, err
	}

	count, err := s.saleRepo.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	cash, err := s.repo.SumCashSalesTx(s.repo.DB(), session.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TillStatusResponse{
		Open:         true,
		Session:      sessionToResponse(session),
		SalesCount:   count,
		SalesTotal:   sessionSalesTotal(session),
		CashExpected: session.InitialAmount.Add(cash),
	}, nil
}

func (s *tillService) FindSession(ctx context.Context, id uuid.UUID) (*dto.TillSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sessão de caixa")
		}
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *tillService) ListSessions(ctx context.Context, actor Actor, requestedStore *string, limit int) ([]dto.TillSessionResponse, error) {
	var storeID *uuid.UUID
	if !actor.IsAdmin() {
		id, err := actor.EffectiveStore(requestedStore)
		if err != nil {
			return nil, err
		}
		storeID = &id
	} else if requestedStore != nil && *requestedStore != "" {
		id, err := uuid.Parse(*requestedStore)
		if err != nil {
			return nil, apperr.Validationf("store_id inválido")
		}
		storeID = &id
	}

	sessions, err := s.repo.ListSessions(ctx, storeID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TillSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, nil
}

func sessionSalesTotal(s *model.CashTillSession) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range s.Sales {
		total = total.Add(sale.TotalAmount)
	}
	return total
}

func sessionToResponse(s *model.CashTillSession) *dto.TillSessionResponse {
	resp := &dto.TillSessionResponse{
		ID:                    s.ID.String(),
		StoreID:               s.StoreID.String(),
		OpenedByID:            s.OpenedByID.String(),
		OpenedAt:              s.OpenedAt.Format(time.RFC3339),
		InitialAmount:         s.InitialAmount,
		FinalAmountReported:   s.FinalAmountReported,
		FinalAmountCalculated: s.FinalAmountCalculated,
		Difference:            s.Difference,
		Status:                s.Status,
		Notes:                 s.Notes,
	}
	if s.Store != nil {
		resp.StoreName = s.Store.Name
	}
	if s.OpenedBy != nil {
		resp.OpenedByName = s.OpenedBy.Name
	}
	if s.ClosedByID != nil {
		id := s.ClosedByID.String()
		resp.ClosedByID = &id
	}
	if s.ClosedAt != nil {
		closed := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp
}
