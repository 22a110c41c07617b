package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/model"
)

type TillRepository interface {
	CreateSessionTx(tx *gorm.DB, s *model.CashTillSession) error
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashTillSession, error)
	FindOpenByStore(ctx context.Context, storeID uuid.UUID) (*model.CashTillSession, error)
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.CashTillSession, error)
	// FindOpenByStoreTx locks the open session row (FOR UPDATE) inside tx.
	FindOpenByStoreTx(tx *gorm.DB, storeID uuid.UUID) (*model.CashTillSession, error)
	UpdateSessionTx(tx *gorm.DB, s *model.CashTillSession) error
	ListSessions(ctx context.Context, storeID *uuid.UUID, limit int) ([]model.CashTillSession, error)

	// SumCashSalesTx totals the session's sales paid in cash (dinheiro).
	SumCashSalesTx(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error)

	CreateCashFlowTx(tx *gorm.DB, f *model.CashFlow) error
	ListCashFlows(ctx context.Context, storeID *uuid.UUID, from, to string) ([]model.CashFlow, error)

	DB() *gorm.DB
}

type tillRepo struct{ db *gorm.DB }

func NewTillRepository(db *gorm.DB) TillRepository { return &tillRepo{db: db} }

func (r *tillRepo) CreateSessionTx(tx *gorm.DB, s *model.CashTillSession) error {
	return tx.Create(s).Error
}

func (r *tillRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashTillSession, error) {
	var s model.CashTillSession
	err := r.db.WithContext(ctx).
		Preload("Store").Preload("OpenedBy").Preload("ClosedBy").
		First(&s, id).Error
	return &s, err
}

func (r *tillRepo) FindOpenByStore(ctx context.Context, storeID uuid.UUID) (*model.CashTillSession, error) {
	var s model.CashTillSession
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, model.TillOpen).
		First(&s).Error
	return &s, err
}

func (r *tillRepo) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.CashTillSession, error) {
	var s model.CashTillSession
	err := r.db.WithContext(ctx).
		Where("opened_by_id = ? AND status = ?", userID, model.TillOpen).
		First(&s).Error
	return &s, err
}

func (r *tillRepo) FindOpenByStoreTx(tx *gorm.DB, storeID uuid.UUID) (*model.CashTillSession, error) {
	var s model.CashTillSession
	err := tx.Raw(`SELECT * FROM cash_till_sessions WHERE store_id = ? AND status = ? FOR UPDATE`,
		storeID, model.TillOpen).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *tillRepo) UpdateSessionTx(tx *gorm.DB, s *model.CashTillSession) error {
	return tx.Save(s).Error
}

func (r *tillRepo) ListSessions(ctx context.Context, storeID *uuid.UUID, limit int) ([]model.CashTillSession, error) {
	var sessions []model.CashTillSession
	q := r.db.WithContext(ctx).Preload("Store").Preload("OpenedBy").Order("opened_at DESC")
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}

func (r *tillRepo) SumCashSalesTx(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&model.Sale{}).
		Select("SUM(total_amount)").
		Where("cash_till_session_id = ? AND payment_method = ?", sessionID, model.PaymentDinheiro).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *tillRepo) CreateCashFlowTx(tx *gorm.DB, f *model.CashFlow) error {
	return tx.Create(f).Error
}

func (r *tillRepo) ListCashFlows(ctx context.Context, storeID *uuid.UUID, from, to string) ([]model.CashFlow, error) {
	var flows []model.CashFlow
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if from != "" {
		q = q.Where("created_at >= ?::date", from)
	}
	if to != "" {
		q = q.Where("created_at < (?::date + interval '1 day')", to)
	}
	err := q.Find(&flows).Error
	return flows, err
}

func (r *tillRepo) DB() *gorm.DB { return r.db }
