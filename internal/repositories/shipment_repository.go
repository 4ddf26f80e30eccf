package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tea-backend/internal/errs"
	"tea-backend/internal/models"
)

type ShipmentRepository struct {
	DB DBTX
}

func NewShipmentRepository(db DBTX) *ShipmentRepository {
	return &ShipmentRepository{DB: db}
}

func (r *ShipmentRepository) ShipmentExists(ctx context.Context, shipmark string) (bool, error) {
	return exists(ctx, r.DB, `SELECT EXISTS(SELECT 1 FROM shipments WHERE shipmark = $1)`, shipmark)
}

func (r *ShipmentRepository) GetShipmentByShipmark(ctx context.Context, shipmark string) (*models.Shipment, error) {
	query := `
		SELECT id, shipmark, status, vessel, packaging_instructions, consignee,
		       user_cognito_id, admin_cognito_id, shipment_date, created_at
		FROM shipments
		WHERE shipmark = $1
	`

	s := &models.Shipment{}
	err := r.DB.QueryRow(ctx, query, shipmark).Scan(
		&s.ID, &s.Shipmark, &s.Status, &s.Vessel, &s.Packaging, &s.Consignee,
		&s.UserCognitoID, &s.AdminCognitoID, &s.ShipmentDate, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound(string(models.KindShipment), shipmark)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment %s: %w", shipmark, err)
	}
	return s, nil
}

func (r *ShipmentRepository) CreateShipment(ctx context.Context, s *models.Shipment) error {
	query := `
		INSERT INTO shipments (
			shipmark, status, vessel, packaging_instructions, consignee,
			user_cognito_id, admin_cognito_id, shipment_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		s.Shipmark, s.Status, s.Vessel, s.Packaging, s.Consignee,
		s.UserCognitoID, s.AdminCognitoID, s.ShipmentDate, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create shipment %s: %w", s.Shipmark, err)
	}
	return nil
}

func (r *ShipmentRepository) ShipmentItemExists(ctx context.Context, shipmentID, stockID int64) (bool, error) {
	return exists(ctx, r.DB,
		`SELECT EXISTS(SELECT 1 FROM shipment_items WHERE shipment_id = $1 AND stock_id = $2)`,
		shipmentID, stockID)
}

func (r *ShipmentRepository) CreateShipmentItem(ctx context.Context, i *models.ShipmentItem) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO shipment_items (shipment_id, stock_id, assigned_weight)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		i.ShipmentID, i.StockID, i.AssignedWeight,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("failed to create shipment item: %w", err)
	}
	return nil
}
