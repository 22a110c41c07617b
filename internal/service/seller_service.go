package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

type SellerService interface {
	Create(ctx context.Context, req dto.SellerRequest) (*dto.SellerResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.SellerResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.SellerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SellerRequest) (*dto.SellerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerService struct {
	repo      repository.SellerRepository
	storeRepo repository.StoreRepository
}

func NewSellerService(repo repository.SellerRepository, storeRepo repository.StoreRepository) SellerService {
	return &sellerService{repo: repo, storeRepo: storeRepo}
}

func (s *sellerService) Create(ctx context.Context, req dto.SellerRequest) (*dto.SellerResponse, error) {
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, apperr.Validationf("store_id inválido")
	}
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, apperr.NotFound("Loja")
	}

	seller := model.Seller{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		StoreID: storeID,
	}
	if err := s.repo.Create(ctx, &seller); err != nil {
		return nil, err
	}
	return sellerToResponse(&seller), nil
}

func (s *sellerService) FindByID(ctx context.Context, id uuid.UUID) (*dto.SellerResponse, error) {
	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendedor")
		}
		return nil, err
	}
	return sellerToResponse(seller), nil
}

// List scopes gerente callers to their own store's sellers.
func (s *sellerService) List(ctx context.Context, actor Actor) ([]dto.SellerResponse, error) {
	var storeID *uuid.UUID
	if !actor.IsAdmin() {
		if actor.StoreID == nil {
			return nil, apperr.Validationf("usuário não está vinculado a nenhuma loja")
		}
		storeID = actor.StoreID
	}

	sellers, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerResponse, 0, len(sellers))
	for i := range sellers {
		out = append(out, *sellerToResponse(&sellers[i]))
	}
	return out, nil
}

func (s *sellerService) Update(ctx context.Context, id uuid.UUID, req dto.SellerRequest) (*dto.SellerResponse, error) {
	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendedor")
		}
		return nil, err
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, apperr.Validationf("store_id inválido")
	}
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, apperr.NotFound("Loja")
	}

	seller.Name = req.Name
	seller.Email = req.Email
	seller.Phone = req.Phone
	seller.StoreID = storeID
	seller.Store = nil

	if err := s.repo.Update(ctx, seller); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *sellerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Vendedor")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func sellerToResponse(seller *model.Seller) *dto.SellerResponse {
	resp := &dto.SellerResponse{
		ID:      seller.ID.String(),
		Name:    seller.Name,
		Email:   seller.Email,
		Phone:   seller.Phone,
		StoreID: seller.StoreID.String(),
	}
	if seller.Store != nil {
		resp.StoreName = seller.Store.Name
	}
	return resp
}
