package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

// lowStockThreshold flags store/product rows at or below this quantity on
// the dashboard.
const lowStockThreshold = 2

type ReportService interface {
	Sales(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.SalesReportResponse, error)
	TopProducts(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.ProductRankResponse, error)
	LeastProducts(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.ProductRankResponse, error)
	Dashboard(ctx context.Context, actor Actor) (*dto.DashboardResponse, error)
	CashFlow(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.CashFlowReportResponse, error)
}

type reportService struct {
	repo     repository.ReportRepository
	tillRepo repository.TillRepository
}

func NewReportService(repo repository.ReportRepository, tillRepo repository.TillRepository) ReportService {
	return &reportService{repo: repo, tillRepo: tillRepo}
}

// resolvePeriod turns the filter's date strings into a [from, to) interval.
// Defaults: first day of the current month through the end of today.
func resolvePeriod(filter dto.ReportFilter) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	if filter.DateFrom != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.DateFrom, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Validationf("date_from inválida")
		}
		from = parsed
	}
	if filter.DateTo != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.DateTo, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Validationf("date_to inválida")
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperr.Validationf("date_to anterior a date_from")
	}
	return from, to, nil
}

// scopeStore narrows the report to the caller's store for gerente users.
func scopeStore(actor Actor, requested string) string {
	if !actor.IsAdmin() && actor.StoreID != nil {
		return actor.StoreID.String()
	}
	return requested
}

func (s *reportService) Sales(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	from, to, err := resolvePeriod(filter)
	if err != nil {
		return nil, err
	}
	storeID := scopeStore(actor, filter.StoreID)

	count, total, err := s.repo.SalesTotals(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}
	byPayment, err := s.repo.SalesByPayment(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		DateFrom:   from.Format("2006-01-02"),
		DateTo:     to.AddDate(0, 0, -1).Format("2006-01-02"),
		SalesCount: count,
		Total:      total,
		ByPayment:  make([]dto.PaymentSummary, 0, len(byPayment)),
	}
	for _, row := range byPayment {
		resp.ByPayment = append(resp.ByPayment, dto.PaymentSummary{
			PaymentMethod: row.PaymentMethod,
			SalesCount:    row.SalesCount,
			Total:         row.Total,
		})
	}

	// Per-store breakdown only makes sense for callers who see all stores.
	if actor.IsAdmin() && storeID == "" {
		byStore, err := s.repo.SalesByStore(ctx, from, to)
		if err != nil {
			return nil, err
		}
		resp.ByStore = storeRowsToSummaries(byStore)
	}
	return resp, nil
}

func (s *reportService) TopProducts(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.ProductRankResponse, error) {
	return s.productRank(ctx, actor, filter, false)
}

func (s *reportService) LeastProducts(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.ProductRankResponse, error) {
	return s.productRank(ctx, actor, filter, true)
}

func (s *reportService) productRank(ctx context.Context, actor Actor, filter dto.ReportFilter, worst bool) (*dto.ProductRankResponse, error) {
	from, to, err := resolvePeriod(filter)
	if err != nil {
		return nil, err
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	storeID := scopeStore(actor, filter.StoreID)

	rows, err := s.repo.ProductRank(ctx, storeID, from, to, filter.Limit, worst)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductRankResponse{
		DateFrom: from.Format("2006-01-02"),
		DateTo:   to.AddDate(0, 0, -1).Format("2006-01-02"),
		Data:     make([]dto.ProductRankEntry, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Data = append(resp.Data, dto.ProductRankEntry{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Code:         row.Code,
			QuantitySold: row.QuantitySold,
			Total:        row.Total,
		})
	}
	return resp, nil
}

func (s *reportService) Dashboard(ctx context.Context, actor Actor) (*dto.DashboardResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	storeID := scopeStore(actor, "")

	todayCount, todayTotal, err := s.repo.SalesTotals(ctx, storeID, todayStart, todayEnd)
	if err != nil {
		return nil, err
	}
	monthCount, monthTotal, err := s.repo.SalesTotals(ctx, storeID, monthStart, todayEnd)
	if err != nil {
		return nil, err
	}
	openTills, err := s.repo.CountOpenTills(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.ProductRank(ctx, storeID, monthStart, todayEnd, 5, false)
	if err != nil {
		return nil, err
	}
	topSellers, err := s.repo.SellerRank(ctx, storeID, monthStart, todayEnd, 5)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TodaySalesCount: todayCount,
		TodayTotal:      todayTotal,
		MonthSalesCount: monthCount,
		MonthTotal:      monthTotal,
		OpenTills:       openTills,
		LowStockCount:   lowStock,
	}
	for _, row := range topProducts {
		resp.TopProducts = append(resp.TopProducts, dto.ProductRankEntry{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Code:         row.Code,
			QuantitySold: row.QuantitySold,
			Total:        row.Total,
		})
	}
	for _, row := range topSellers {
		resp.TopSellers = append(resp.TopSellers, dto.SellerRankEntry{
			SellerID:   row.SellerID,
			SellerName: row.SellerName,
			SalesCount: row.SalesCount,
			Total:      row.Total,
		})
	}
	if actor.IsAdmin() {
		byStore, err := s.repo.SalesByStore(ctx, monthStart, todayEnd)
		if err != nil {
			return nil, err
		}
		resp.ByStore = storeRowsToSummaries(byStore)
	}
	return resp, nil
}

func (s *reportService) CashFlow(ctx context.Context, actor Actor, filter dto.ReportFilter) (*dto.CashFlowReportResponse, error) {
	from, to, err := resolvePeriod(filter)
	if err != nil {
		return nil, err
	}
	storeID := scopeStore(actor, filter.StoreID)

	inflow, outflow, err := s.repo.CashFlowTotals(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}

	flows, err := s.listFlows(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.CashFlowReportResponse{
		DateFrom: from.Format("2006-01-02"),
		DateTo:   to.AddDate(0, 0, -1).Format("2006-01-02"),
		Inflow:   inflow,
		Outflow:  outflow,
		Balance:  inflow.Sub(outflow),
		Data:     flows,
	}, nil
}

func (s *reportService) listFlows(ctx context.Context, storeID string, from, to time.Time) ([]dto.CashFlowResponse, error) {
	var storeUUID *uuid.UUID
	if storeID != "" {
		id, err := uuid.Parse(storeID)
		if err != nil {
			return nil, apperr.Validationf("store_id inválido")
		}
		storeUUID = &id
	}

	flows, err := s.tillRepo.ListCashFlows(ctx, storeUUID, from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashFlowResponse, 0, len(flows))
	for _, flow := range flows {
		resp := dto.CashFlowResponse{
			ID:          flow.ID.String(),
			StoreID:     flow.StoreID.String(),
			Amount:      flow.Amount,
			FlowType:    flow.FlowType,
			Description: flow.Description,
			CreatedAt:   flow.CreatedAt.Format(time.RFC3339),
		}
		if flow.CashTillSessionID != nil {
			id := flow.CashTillSessionID.String()
			resp.SessionID = &id
		}
		out = append(out, resp)
	}
	return out, nil
}

func storeRowsToSummaries(rows []repository.StoreSalesRow) []dto.StoreSalesSummary {
	out := make([]dto.StoreSalesSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StoreSalesSummary{
			StoreID:    row.StoreID,
			StoreName:  row.StoreName,
			SalesCount: row.SalesCount,
			Total:      row.Total,
		})
	}
	return out
}
