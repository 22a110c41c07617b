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

type OrderService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, actor Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo       repository.OrderRepository
	sellerRepo repository.SellerRepository
}

func NewOrderService(repo repository.OrderRepository, sellerRepo repository.SellerRepository) OrderService {
	return &orderService{repo: repo, sellerRepo: sellerRepo}
}

func (s *orderService) Create(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	storeID, err := actor.EffectiveStore(req.StoreID)
	if err != nil {
		return nil, err
	}
	if req.TotalPrice.IsNegative() {
		return nil, apperr.Validationf("total_price não pode ser negativo")
	}

	order := model.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StoreID:       storeID,

		SphereRight:   req.RightEye.Sphere,
		CylinderRight: req.RightEye.Cylinder,
		AxisRight:     req.RightEye.Axis,
		AdditionRight: req.RightEye.Addition,
		DNPRight:      req.RightEye.DNP,
		HeightRight:   req.RightEye.Height,

		SphereLeft:   req.LeftEye.Sphere,
		CylinderLeft: req.LeftEye.Cylinder,
		AxisLeft:     req.LeftEye.Axis,
		AdditionLeft: req.LeftEye.Addition,
		DNPLeft:      req.LeftEye.DNP,
		HeightLeft:   req.LeftEye.Height,

		LensDescription:  req.LensDescription,
		FrameDescription: req.FrameDescription,
		Notes:            req.Notes,
		TotalPrice:       req.TotalPrice,
		Status:           model.OrderRealizando,
	}

	if req.SellerID != nil && *req.SellerID != "" {
		sellerID, err := uuid.Parse(*req.SellerID)
		if err != nil {
			return nil, apperr.Validationf("seller_id inválido")
		}
		seller, err := s.sellerRepo.FindByID(ctx, sellerID)
		if err != nil {
			return nil, apperr.NotFound("Vendedor")
		}
		if seller.StoreID != storeID {
			return nil, apperr.Validationf("vendedor não pertence à loja da ordem")
		}
		order.SellerID = &sellerID
	}

	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, err
	}
	return orderToResponse(&order), nil
}

func (s *orderService) FindByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Ordem de serviço")
		}
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, actor Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if !actor.IsAdmin() && actor.StoreID != nil {
		filter.StoreID = actor.StoreID.String()
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Ordem de serviço")
		}
		return nil, err
	}
	if order.Status == model.OrderEntregue {
		return nil, apperr.InvalidState("Ordem entregue não pode ser alterada")
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}
	if req.SellerID != nil {
		if *req.SellerID == "" {
			order.SellerID = nil
		} else {
			sellerID, err := uuid.Parse(*req.SellerID)
			if err != nil {
				return nil, apperr.Validationf("seller_id inválido")
			}
			seller, err := s.sellerRepo.FindByID(ctx, sellerID)
			if err != nil {
				return nil, apperr.NotFound("Vendedor")
			}
			if seller.StoreID != order.StoreID {
				return nil, apperr.Validationf("vendedor não pertence à loja da ordem")
			}
			order.SellerID = &sellerID
		}
	}
	if req.RightEye != nil {
		order.SphereRight = req.RightEye.Sphere
		order.CylinderRight = req.RightEye.Cylinder
		order.AxisRight = req.RightEye.Axis
		order.AdditionRight = req.RightEye.Addition
		order.DNPRight = req.RightEye.DNP
		order.HeightRight = req.RightEye.Height
	}
	if req.LeftEye != nil {
		order.SphereLeft = req.LeftEye.Sphere
		order.CylinderLeft = req.LeftEye.Cylinder
		order.AxisLeft = req.LeftEye.Axis
		order.AdditionLeft = req.LeftEye.Addition
		order.DNPLeft = req.LeftEye.DNP
		order.HeightLeft = req.LeftEye.Height
	}
	if req.LensDescription != nil {
		order.LensDescription = *req.LensDescription
	}
	if req.FrameDescription != nil {
		order.FrameDescription = *req.FrameDescription
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.TotalPrice != nil {
		if req.TotalPrice.IsNegative() {
			return nil, apperr.Validationf("total_price não pode ser negativo")
		}
		order.TotalPrice = *req.TotalPrice
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

// UpdateStatus enforces the forward-only lifecycle
// realizando → pronto → entregue.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Ordem de serviço")
		}
		return nil, err
	}

	if !validOrderTransition(order.Status, req.Status) {
		return nil, apperr.InvalidState("Transição de status inválida: " + order.Status + " → " + req.Status)
	}
	order.Status = req.Status

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Ordem de serviço")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validOrderTransition(from, to string) bool {
	switch from {
	case model.OrderRealizando:
		return to == model.OrderPronto
	case model.OrderPronto:
		return to == model.OrderEntregue
	}
	return false
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		StoreID:       o.StoreID.String(),

		RightEye: dto.EyeMeasurement{
			Sphere:   o.SphereRight,
			Cylinder: o.CylinderRight,
			Axis:     o.AxisRight,
			Addition: o.AdditionRight,
			DNP:      o.DNPRight,
			Height:   o.HeightRight,
		},
		LeftEye: dto.EyeMeasurement{
			Sphere:   o.SphereLeft,
			Cylinder: o.CylinderLeft,
			Axis:     o.AxisLeft,
			Addition: o.AdditionLeft,
			DNP:      o.DNPLeft,
			Height:   o.HeightLeft,
		},

		LensDescription:  o.LensDescription,
		FrameDescription: o.FrameDescription,
		Notes:            o.Notes,
		TotalPrice:       o.TotalPrice,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        o.UpdatedAt.Format(time.RFC3339),
	}
	if o.SellerID != nil {
		id := o.SellerID.String()
		resp.SellerID = &id
	}
	if o.Seller != nil {
		resp.SellerName = o.Seller.Name
	}
	if o.Store != nil {
		resp.StoreName = o.Store.Name
	}
	return resp
}
