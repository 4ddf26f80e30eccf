package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"tea-backend/internal/models"
)

// MiscRepository writes notifications, contacts, favorites, reports and raw
// records.
type MiscRepository struct {
	DB DBTX
}

func NewMiscRepository(db DBTX) *MiscRepository {
	return &MiscRepository{DB: db}
}

func (r *MiscRepository) CreateAdminNotification(ctx context.Context, n *models.AdminNotification) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO admin_notifications (admin_cognito_id, message, details, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		n.AdminCognitoID, n.Message, string(n.Details), n.IsRead, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to create admin notification: %w", err)
	}
	return nil
}

func (r *MiscRepository) CreateContact(ctx context.Context, c *models.Contact) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO contacts (name, email, subject, message, privacy_consent, user_cognito_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		c.Name, c.Email, c.Subject, c.Message, c.PrivacyConsent, c.UserCognitoID, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *MiscRepository) FavoriteExists(ctx context.Context, userCognitoID string, stockID *int64) (bool, error) {
	return exists(ctx, r.DB,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_cognito_id = $1 AND stock_id IS NOT DISTINCT FROM $2)`,
		userCognitoID, stockID)
}

func (r *MiscRepository) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO favorites (user_cognito_id, stock_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		f.UserCognitoID, f.StockID, f.CreatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

func (r *MiscRepository) CreateReport(ctx context.Context, rep *models.Report) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO reports (admin_cognito_id, user_cognito_id, title, description, file_url, file_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		rep.AdminCognitoID, rep.UserCognitoID, rep.Title, rep.Description, rep.FileURL, rep.FileType, rep.CreatedAt,
	).Scan(&rep.ID)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *MiscRepository) InsertRaw(ctx context.Context, entity string, payload json.RawMessage) error {
	if _, err := r.DB.Exec(ctx,
		`INSERT INTO raw_records (entity, payload) VALUES ($1, $2)`,
		entity, string(payload),
	); err != nil {
		return fmt.Errorf("failed to insert %s record: %w", entity, err)
	}
	return nil
}
