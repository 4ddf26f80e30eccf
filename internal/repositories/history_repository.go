package repositories

import (
	"context"
	"fmt"
	"time"

	"tea-backend/internal/models"
)

type HistoryRepository struct {
	DB DBTX
}

func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) StockHistoryExists(ctx context.Context, idempotencyKey string) (bool, error) {
	return exists(ctx, r.DB,
		`SELECT EXISTS(SELECT 1 FROM stock_histories WHERE idempotency_key = $1)`,
		idempotencyKey)
}

// RecentStockHistoryExists checks if the same action was logged for the stock
// since the given instant.
func (r *HistoryRepository) RecentStockHistoryExists(ctx context.Context, stockID int64, action string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM stock_histories
			WHERE stock_id = $1
			AND action = $2
			AND timestamp >= $3
		)
	`
	return exists(ctx, r.DB, query, stockID, action, since)
}

func (r *HistoryRepository) CreateStockHistory(ctx context.Context, h *models.StockHistory) error {
	query := `
		INSERT INTO stock_histories (
			stock_id, action, user_cognito_id, admin_cognito_id, shipment_id,
			details, idempotency_key, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		h.StockID, h.Action, h.UserCognitoID, h.AdminCognitoID, h.ShipmentID,
		nullJSON(h.Details), h.IdempotencyKey, h.Timestamp,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("failed to create stock history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) CreateShipmentHistory(ctx context.Context, h *models.ShipmentHistory) error {
	query := `
		INSERT INTO shipment_histories (
			shipment_id, action, user_cognito_id, admin_cognito_id, details, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		h.ShipmentID, h.Action, h.UserCognitoID, h.AdminCognitoID, nullJSON(h.Details), h.Timestamp,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("failed to create shipment history: %w", err)
	}
	return nil
}

// nullJSON maps an empty payload to SQL NULL.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
