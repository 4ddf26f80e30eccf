package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tea-backend/internal/errs"
	"tea-backend/internal/models"
)

type StockRepository struct {
	DB DBTX
}

func NewStockRepository(db DBTX) *StockRepository {
	return &StockRepository{DB: db}
}

func (r *StockRepository) CreateStock(ctx context.Context, s *models.Stock) error {
	query := `
		INSERT INTO stocks (
			lot_no, mark, sale_code, grade, broker, invoice, bags, weight,
			purchase_value, total_purchase_value, aging_days, penalty, commission,
			net_price, total, batch_number, low_stock_threshold, admin_cognito_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		s.LotNo, s.Mark, s.SaleCode, s.Grade, s.Broker, s.Invoice, s.Bags, s.Weight,
		s.PurchaseValue, s.TotalPurchaseValue, s.AgingDays, s.Penalty, s.Commission,
		s.NetPrice, s.Total, s.BatchNumber, s.LowStockThreshold, s.AdminCognitoID,
		s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create stock %s: %w", s.LotNo, err)
	}
	return nil
}

func (r *StockRepository) GetStockByLotNo(ctx context.Context, lotNo string) (*models.Stock, error) {
	query := `
		SELECT id, lot_no, mark, sale_code, grade, broker, invoice, bags, weight,
		       purchase_value, total_purchase_value, aging_days, penalty, commission,
		       net_price, total, batch_number, low_stock_threshold, admin_cognito_id,
		       created_at, updated_at
		FROM stocks
		WHERE lot_no = $1
	`

	s := &models.Stock{}
	err := r.DB.QueryRow(ctx, query, lotNo).Scan(
		&s.ID, &s.LotNo, &s.Mark, &s.SaleCode, &s.Grade, &s.Broker, &s.Invoice, &s.Bags, &s.Weight,
		&s.PurchaseValue, &s.TotalPurchaseValue, &s.AgingDays, &s.Penalty, &s.Commission,
		&s.NetPrice, &s.Total, &s.BatchNumber, &s.LowStockThreshold, &s.AdminCognitoID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound(string(models.KindStocks), lotNo)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %s: %w", lotNo, err)
	}
	return s, nil
}

// UpdateStockWeight sets the on-hand weight. Only the stock ledger calls it.
func (r *StockRepository) UpdateStockWeight(ctx context.Context, stockID int64, weight float64, at time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE stocks SET weight = $2, updated_at = $3 WHERE id = $1`,
		stockID, weight, at)
	if err != nil {
		return fmt.Errorf("failed to update stock weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound(string(models.KindStocks), fmt.Sprintf("id=%d", stockID))
	}
	return nil
}

func (r *StockRepository) AssignmentExists(ctx context.Context, stockID int64, userCognitoID string) (bool, error) {
	return exists(ctx, r.DB,
		`SELECT EXISTS(SELECT 1 FROM stock_assignments WHERE stock_id = $1 AND user_cognito_id = $2)`,
		stockID, userCognitoID)
}

func (r *StockRepository) CreateAssignment(ctx context.Context, a *models.StockAssignment) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO stock_assignments (stock_id, user_cognito_id, assigned_weight, assigned_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.StockID, a.UserCognitoID, a.AssignedWeight, a.AssignedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create stock assignment: %w", err)
	}
	return nil
}
