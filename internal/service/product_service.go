package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	FindByCode(ctx context.Context, code string) (*dto.ProductResponse, error)
	List(ctx context.Context, actor Actor, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	stockRepo    repository.StockRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	repo repository.ProductRepository,
	stockRepo repository.StockRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{repo: repo, stockRepo: stockRepo, categoryRepo: categoryRepo}
}

// Create allocates the sequential code and inserts the product in one
// transaction, so concurrent creations never collide on a code. Initial
// stock, when present, is applied as entrada movements inside the same tx.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperr.Validationf("category_id inválido")
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, apperr.NotFound("Categoria")
	}
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, apperr.Validationf("preço e custo não podem ser negativos")
	}

	type initialEntry struct {
		storeID  uuid.UUID
		quantity int
	}
	var initial []initialEntry
	for _, e := range req.InitialStock {
		sid, err := uuid.Parse(e.StoreID)
		if err != nil {
			return nil, apperr.Validationf("store_id inválido em initial_stock")
		}
		initial = append(initial, initialEntry{storeID: sid, quantity: e.Quantity})
	}

	product := model.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		ModelName:   req.Model,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		CategoryID:  categoryID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		code, err := s.repo.NextCodeTx(tx)
		if err != nil {
			return err
		}
		product.Code = code
		if err := s.repo.CreateTx(tx, &product); err != nil {
			return err
		}

		for _, e := range initial {
			if err := s.stockRepo.IncrementTx(tx, e.storeID, product.ID, e.quantity); err != nil {
				return err
			}
			mov := model.StockMovement{
				ProductID:    product.ID,
				StoreID:      e.storeID,
				Quantity:     e.quantity,
				MovementType: model.MovementEntrada,
				Reason:       "Estoque inicial",
			}
			if err := s.stockRepo.CreateMovementTx(tx, &mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.toResponse(ctx, &product), nil
}

func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Produto")
		}
		return nil, err
	}
	return s.toResponse(ctx, product), nil
}

func (s *productService) FindByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Produto")
		}
		return nil, err
	}
	return s.toResponse(ctx, product), nil
}

// List shows the whole catalog to admins; gerentes only see products their
// store actually stocks.
func (s *productService) List(ctx context.Context, actor Actor, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if !actor.IsAdmin() {
		if actor.StoreID == nil {
			return &dto.ProductListResponse{Data: []dto.ProductResponse{}, Page: filter.Page, Limit: filter.Limit}, nil
		}
		filter.AssortmentStoreID = actor.StoreID.String()
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *s.toResponse(ctx, &products[i]))
	}
	return &dto.ProductListResponse{
		Data:       out,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Update never touches Code: the sequential identifier is immutable once
// allocated.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Produto")
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Model != nil {
		product.ModelName = *req.Model
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.Validationf("preço não pode ser negativo")
		}
		product.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, apperr.Validationf("custo não pode ser negativo")
		}
		product.Cost = *req.Cost
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperr.Validationf("category_id inválido")
		}
		if _, err := s.categoryRepo.FindByID(ctx, cid); err != nil {
			return nil, apperr.NotFound("Categoria")
		}
		product.CategoryID = cid
		product.Category = nil
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Produto")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *productService) toResponse(ctx context.Context, p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Brand:       p.Brand,
		Model:       p.ModelName,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		CategoryID:  p.CategoryID.String(),
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	if total, err := s.stockRepo.TotalQuantity(ctx, p.ID); err == nil {
		resp.TotalStock = total
	}
	return resp
}
