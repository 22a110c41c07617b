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

type StoreService interface {
	Create(ctx context.Context, req dto.CreateStoreRequest) (*dto.StoreResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.StoreResponse, error)
	List(ctx context.Context) ([]dto.StoreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateStoreRequest) (*dto.StoreResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeService struct {
	repo     repository.StoreRepository
	userRepo repository.UserRepository
}

func NewStoreService(repo repository.StoreRepository, userRepo repository.UserRepository) StoreService {
	return &storeService{repo: repo, userRepo: userRepo}
}

func (s *storeService) Create(ctx context.Context, req dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	store := model.Store{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return nil, apperr.Validationf("manager_id inválido")
		}
		if _, err := s.userRepo.FindByID(ctx, mid); err != nil {
			return nil, apperr.NotFound("Usuário")
		}
		store.ManagerID = &mid
	}

	if err := s.repo.Create(ctx, &store); err != nil {
		return nil, err
	}
	return storeToResponse(&store), nil
}

func (s *storeService) FindByID(ctx context.Context, id uuid.UUID) (*dto.StoreResponse, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Loja")
		}
		return nil, err
	}
	return storeToResponse(store), nil
}

func (s *storeService) List(ctx context.Context) ([]dto.StoreResponse, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, *storeToResponse(&stores[i]))
	}
	return out, nil
}

func (s *storeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Loja")
		}
		return nil, err
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			store.ManagerID = nil
			store.Manager = nil
		} else {
			mid, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return nil, apperr.Validationf("manager_id inválido")
			}
			if _, err := s.userRepo.FindByID(ctx, mid); err != nil {
				return nil, apperr.NotFound("Usuário")
			}
			store.ManagerID = &mid
			store.Manager = nil
		}
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *storeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Loja")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func storeToResponse(store *model.Store) *dto.StoreResponse {
	resp := &dto.StoreResponse{
		ID:      store.ID.String(),
		Name:    store.Name,
		Address: store.Address,
		Phone:   store.Phone,
		Email:   store.Email,
	}
	if store.ManagerID != nil {
		id := store.ManagerID.String()
		resp.ManagerID = &id
	}
	if store.Manager != nil {
		name := store.Manager.Name
		resp.ManagerName = &name
	}
	return resp
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryService interface {
	Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return categoryToResponse(&category), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *categoryToResponse(&cats[i]))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Categoria")
		}
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return categoryToResponse(category), nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Categoria")
		}
		return err
	}
	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("Não é possível excluir uma categoria que possui produtos associados")
	}
	return s.repo.Deactivate(ctx, id)
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}
