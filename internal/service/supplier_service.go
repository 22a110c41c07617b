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

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context, name string) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier := model.Supplier{
		Name:    req.Name,
		CNPJ:    req.CNPJ,
		CPF:     req.CPF,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Notes:   req.Notes,
		Active:  true,
	}
	if err := s.repo.Create(ctx, &supplier); err != nil {
		return nil, err
	}
	return supplierToResponse(&supplier), nil
}

func (s *supplierService) FindByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Fornecedor")
		}
		return nil, err
	}
	return supplierToResponse(supplier), nil
}

func (s *supplierService) List(ctx context.Context, name string) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Fornecedor")
		}
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.CNPJ != nil {
		supplier.CNPJ = *req.CNPJ
	}
	if req.CPF != nil {
		supplier.CPF = *req.CPF
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.City != nil {
		supplier.City = *req.City
	}
	if req.State != nil {
		supplier.State = *req.State
	}
	if req.ZipCode != nil {
		supplier.ZipCode = *req.ZipCode
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}
	if req.Active != nil {
		supplier.Active = *req.Active
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierToResponse(supplier), nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Fornecedor")
		}
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func supplierToResponse(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		CNPJ:    s.CNPJ,
		CPF:     s.CPF,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		ZipCode: s.ZipCode,
		Notes:   s.Notes,
		Active:  s.Active,
	}
}
