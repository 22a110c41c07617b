package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context) (*dto.UserListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo      repository.UserRepository
	storeRepo repository.StoreRepository
}

func NewUserService(repo repository.UserRepository, storeRepo repository.StoreRepository) UserService {
	return &userService{repo: repo, storeRepo: storeRepo}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apperr.Conflictf("Já existe um usuário com este username")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Gerente accounts must be bound to a store; admin accounts operate
	// across all stores and carry none.
	if req.Role == model.RoleGerente && (req.StoreID == nil || *req.StoreID == "") {
		return nil, apperr.Validationf("gerente precisa estar vinculado a uma loja")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if req.StoreID != nil && *req.StoreID != "" {
		sid, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return nil, apperr.Validationf("store_id inválido")
		}
		if _, err := s.storeRepo.FindByID(ctx, sid); err != nil {
			return nil, apperr.NotFound("Loja")
		}
		user.StoreID = &sid
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return userToResponse(&user), nil
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Usuário")
		}
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) List(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return &dto.UserListResponse{Data: out, Total: int64(len(out))}, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Usuário")
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.StoreID != nil {
		if *req.StoreID == "" {
			user.StoreID = nil
			user.Store = nil
		} else {
			sid, err := uuid.Parse(*req.StoreID)
			if err != nil {
				return nil, apperr.Validationf("store_id inválido")
			}
			if _, err := s.storeRepo.FindByID(ctx, sid); err != nil {
				return nil, apperr.NotFound("Loja")
			}
			user.StoreID = &sid
			user.Store = nil
		}
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if user.Role == model.RoleGerente && user.StoreID == nil {
		return nil, apperr.Validationf("gerente precisa estar vinculado a uma loja")
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Usuário")
		}
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func userToResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Active:   u.Active,
	}
	if u.StoreID != nil {
		id := u.StoreID.String()
		resp.StoreID = &id
	}
	return resp
}
