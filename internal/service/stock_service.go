package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

type StockService interface {
	Record(ctx context.Context, actor Actor, req dto.StockMovementRequest) (*dto.StockMovementResponse, error)
	ListForStore(ctx context.Context, actor Actor, requestedStore *string, stockLevel string) ([]dto.StoreStockResponse, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]dto.StoreStockResponse, error)
	ListMovements(ctx context.Context, actor Actor, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type stockService struct {
	repo        repository.StockRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

func NewStockService(
	repo repository.StockRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) StockService {
	return &stockService{repo: repo, productRepo: productRepo, storeRepo: storeRepo}
}

// Record applies a manual stock movement. Entrada creates the per-store row
// when missing; saida uses the same quantity guard as the sale engine, so
// stock can never go negative.
func (s *stockService) Record(ctx context.Context, actor Actor, req dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validationf("product_id inválido")
	}
	sid := req.StoreID
	storeID, err := actor.EffectiveStore(&sid)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFound("Produto")
	}
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, apperr.NotFound("Loja")
	}

	mov := model.StockMovement{
		ProductID:    productID,
		StoreID:      storeID,
		Quantity:     req.Quantity,
		MovementType: req.MovementType,
		Reason:       req.Reason,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		switch req.MovementType {
		case model.MovementEntrada:
			if err := s.repo.IncrementTx(tx, storeID, productID, req.Quantity); err != nil {
				return err
			}
		case model.MovementSaida:
			ok, err := s.repo.DecrementTx(tx, storeID, productID, req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, qErr := s.repo.FindQuantity(ctx, storeID, productID)
				if qErr != nil {
					available = 0
				}
				return &apperr.InsufficientStockError{
					Product:   product.Name,
					Requested: req.Quantity,
					Available: available,
				}
			}
		default:
			return apperr.Validationf("movement_type deve ser entrada ou saida")
		}
		return s.repo.CreateMovementTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movementToResponse(&mov)
	resp.ProductName = product.Name
	return resp, nil
}

func (s *stockService) ListForStore(ctx context.Context, actor Actor, requestedStore *string, stockLevel string) ([]dto.StoreStockResponse, error) {
	storeID, err := actor.EffectiveStore(requestedStore)
	if err != nil {
		return nil, err
	}
	switch stockLevel {
	case "", "low", "out", "normal":
	default:
		return nil, apperr.Validationf("stock_level deve ser low, out ou normal")
	}
	rows, err := s.repo.ListForStore(ctx, storeID, stockLevel)
	if err != nil {
		return nil, err
	}
	return storeProductsToResponse(rows), nil
}

func (s *stockService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]dto.StoreStockResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Produto")
		}
		return nil, err
	}
	rows, err := s.repo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return storeProductsToResponse(rows), nil
}

func (s *stockService) ListMovements(ctx context.Context, actor Actor, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if !actor.IsAdmin() && actor.StoreID != nil {
		filter.StoreID = actor.StoreID.String()
	}

	movs, total, err := s.repo.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *movementToResponse(&movs[i]))
	}
	return &dto.StockMovementListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func storeProductsToResponse(rows []model.StoreProduct) []dto.StoreStockResponse {
	out := make([]dto.StoreStockResponse, 0, len(rows))
	for _, row := range rows {
		resp := dto.StoreStockResponse{
			StoreID:   row.StoreID.String(),
			ProductID: row.ProductID.String(),
			Quantity:  row.Quantity,
		}
		if row.Store != nil {
			resp.StoreName = row.Store.Name
		}
		if row.Product != nil {
			resp.ProductName = row.Product.Name
			resp.Code = row.Product.Code
		}
		out = append(out, resp)
	}
	return out
}

func movementToResponse(m *model.StockMovement) *dto.StockMovementResponse {
	resp := &dto.StockMovementResponse{
		ID:           m.ID.String(),
		ProductID:    m.ProductID.String(),
		StoreID:      m.StoreID.String(),
		Quantity:     m.Quantity,
		MovementType: m.MovementType,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.Product != nil {
		resp.ProductName = m.Product.Name
	}
	if m.Store != nil {
		resp.StoreName = m.Store.Name
	}
	return resp
}
