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

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := s.repo.FindByCPF(ctx, req.CPF); err == nil {
		return nil, apperr.Conflictf("Já existe um cliente com este CPF")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := model.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		CPF:          req.CPF,
		Sex:          req.Sex,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Notes:        req.Notes,
		GrauOD:       req.GrauOD,
		GrauOE:       req.GrauOE,
		DNPOD:        req.DNPOD,
		DNPOE:        req.DNPOE,
		Adicao:       req.Adicao,
		OpticalNotes: req.OpticalNotes,
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperr.Validationf("birth_date inválida")
		}
		customer.BirthDate = &birth
	}

	if err := s.repo.Create(ctx, &customer); err != nil {
		return nil, err
	}
	return customerToResponse(&customer), nil
}

func (s *customerService) FindByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cliente")
		}
		return nil, err
	}
	return customerToResponse(customer), nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cliente")
		}
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperr.Validationf("birth_date inválida")
		}
		customer.BirthDate = &birth
	}
	if req.Sex != nil {
		customer.Sex = *req.Sex
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.ZipCode != nil {
		customer.ZipCode = *req.ZipCode
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.GrauOD != nil {
		customer.GrauOD = req.GrauOD
	}
	if req.GrauOE != nil {
		customer.GrauOE = req.GrauOE
	}
	if req.DNPOD != nil {
		customer.DNPOD = req.DNPOD
	}
	if req.DNPOE != nil {
		customer.DNPOE = req.DNPOE
	}
	if req.Adicao != nil {
		customer.Adicao = req.Adicao
	}
	if req.OpticalNotes != nil {
		customer.OpticalNotes = req.OpticalNotes
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Cliente")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		CPF:          c.CPF,
		Sex:          c.Sex,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Notes:        c.Notes,
		GrauOD:       c.GrauOD,
		GrauOE:       c.GrauOE,
		DNPOD:        c.DNPOD,
		DNPOE:        c.DNPOE,
		Adicao:       c.Adicao,
		OpticalNotes: c.OpticalNotes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.BirthDate != nil {
		birth := c.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birth
	}
	return resp
}
