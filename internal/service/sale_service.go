package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
	"github.com/vitorduarteebb/otica2/internal/worker"
)

type SaleService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, actor Actor, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	stockRepo    repository.StockRepository
	tillRepo     repository.TillRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	sellerRepo   repository.SellerRepository
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	stockRepo repository.StockRepository,
	tillRepo repository.TillRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	sellerRepo repository.SellerRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:         repo,
		stockRepo:    stockRepo,
		tillRepo:     tillRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Create registers a sale as one atomic unit:
//  1. Resolve the caller's open till session — no session, no sale.
//  2. Resolve products and snapshot current prices (pre-flight, outside TX).
//  3. BEGIN TX: create sale + items, decrement stock with the quantity
//     guard, append one saida movement per item, append the cash flow entry.
//  4. COMMIT — any guard failure rolls the whole sale back.
//  5. (async) dispatch the receipt job.
func (s *saleService) Create(ctx context.Context, actor Actor, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	session, err := s.resolveOpenSession(ctx, actor, req.StoreID)
	if err != nil {
		return nil, err
	}

	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, apperr.Validationf("seller_id inválido")
	}
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, apperr.NotFound("Vendedor")
	}
	if seller.StoreID != session.StoreID {
		return nil, apperr.Validationf("vendedor não pertence à loja da venda")
	}

	customerName, customerEmail, customerPhone := req.CustomerName, "", req.CustomerPhone
	if req.CustomerEmail != nil {
		customerEmail = *req.CustomerEmail
	}
	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, apperr.Validationf("customer_id inválido")
		}
		customer, err := s.customerRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, apperr.NotFound("Cliente")
		}
		customerID = &cid
		if customerName == "" {
			customerName = customer.Name
		}
		if customerEmail == "" {
			customerEmail = customer.Email
		}
		if customerPhone == "" {
			customerPhone = customer.Phone
		}
	}
	if customerName == "" {
		customerName = "Consumidor final"
	}

	// Resolve products and snapshot prices (pre-flight, outside TX).
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
	}

	var resolved []resolvedItem
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apperr.Validationf("product_id inválido")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apperr.NotFound("Produto")
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.Price,
			quantity:  item.Quantity,
		})
	}

	sale := model.Sale{
		StoreID:           session.StoreID,
		CashTillSessionID: session.ID,
		SellerID:          sellerID,
		CustomerID:        customerID,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		CustomerPhone:     customerPhone,
		TotalAmount:       total,
		PaymentMethod:     req.PaymentMethod,
		SaleDate:          time.Now(),
	}
	for _, r := range resolved {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:  r.productID,
			Quantity:   r.quantity,
			UnitPrice:  r.price,
			TotalPrice: r.price.Mul(decimal.NewFromInt(int64(r.quantity))),
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		reason := fmt.Sprintf("Venda #%s", sale.ID)
		for _, r := range resolved {
			// Atomic check-and-decrement: the guard failing means another
			// sale took the stock first — roll everything back.
			ok, err := s.stockRepo.DecrementTx(tx, session.StoreID, r.productID, r.quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, qErr := s.stockRepo.FindQuantity(ctx, session.StoreID, r.productID)
				if qErr != nil {
					available = 0
				}
				return &apperr.InsufficientStockError{
					Product:   r.name,
					Requested: r.quantity,
					Available: available,
				}
			}

			mov := model.StockMovement{
				ProductID:    r.productID,
				StoreID:      session.StoreID,
				Quantity:     r.quantity,
				MovementType: model.MovementSaida,
				Reason:       reason,
			}
			if err := s.stockRepo.CreateMovementTx(tx, &mov); err != nil {
				return err
			}
		}

		flow := model.CashFlow{
			StoreID:           session.StoreID,
			CashTillSessionID: &session.ID,
			Amount:            total,
			FlowType:          model.MovementEntrada,
			Description:       reason,
		}
		return s.tillRepo.CreateCashFlowTx(tx, &flow)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt job — best-effort, never blocks the sale.
	if s.dispatcher != nil {
		payload := map[string]interface{}{"sale_id": sale.ID.String()}
		if customerEmail != "" {
			payload["customer_email"] = customerEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, payload)
	}

	resp := saleToResponse(&sale)
	resp.SellerName = seller.Name
	for i, r := range resolved {
		resp.Items[i].ProductName = r.name
	}
	return resp, nil
}

// resolveOpenSession picks the till session the sale belongs to. Gerente
// callers sell against their store's open session; admin callers against the
// session they themselves opened.
func (s *saleService) resolveOpenSession(ctx context.Context, actor Actor, requestedStore *string) (*model.CashTillSession, error) {
	if actor.IsAdmin() {
		session, err := s.tillRepo.FindOpenByUser(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &apperr.NoOpenSessionError{}
			}
			return nil, err
		}
		return session, nil
	}

	storeID, err := actor.EffectiveStore(requestedStore)
	if err != nil {
		return nil, err
	}
	session, err := s.tillRepo.FindOpenByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NoOpenSessionError{}
		}
		return nil, err
	}
	return session, nil
}

func (s *saleService) FindByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Venda")
		}
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, actor Actor, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	// Gerente callers only ever see their own store's sales.
	if !actor.IsAdmin() && actor.StoreID != nil {
		filter.StoreID = actor.StoreID.String()
	}

	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		it := dto.SaleItemResponse{
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
		if item.Product != nil {
			it.ProductName = item.Product.Name
			it.Code = item.Product.Code
		}
		items = append(items, it)
	}

	resp := &dto.SaleResponse{
		ID:                sale.ID.String(),
		StoreID:           sale.StoreID.String(),
		CashTillSessionID: sale.CashTillSessionID.String(),
		SellerID:          sale.SellerID.String(),
		CustomerName:      sale.CustomerName,
		TotalAmount:       sale.TotalAmount,
		PaymentMethod:     sale.PaymentMethod,
		SaleDate:          sale.SaleDate.Format(time.RFC3339),
		Items:             items,
	}
	if sale.Store != nil {
		resp.StoreName = sale.Store.Name
	}
	if sale.Seller != nil {
		resp.SellerName = sale.Seller.Name
	}
	if sale.CustomerID != nil {
		id := sale.CustomerID.String()
		resp.CustomerID = &id
	}
	return resp
}
