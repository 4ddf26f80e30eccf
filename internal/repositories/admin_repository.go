package repositories

import (
	"context"
	"fmt"

	"tea-backend/internal/models"
)

type AdminRepository struct {
	DB DBTX
}

func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{DB: db}
}

// UpsertAdmin inserts the admin or refreshes its profile when the cognito id
// already exists.
func (r *AdminRepository) UpsertAdmin(ctx context.Context, a *models.Admin) error {
	query := `
		INSERT INTO admins (admin_cognito_id, name, email, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (admin_cognito_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.DB.Exec(ctx, query,
		a.AdminCognitoID, a.Name, a.Email, a.PhoneNumber, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert admin %s: %w", a.AdminCognitoID, err)
	}
	return nil
}

func (r *AdminRepository) AdminExists(ctx context.Context, adminCognitoID string) (bool, error) {
	return exists(ctx, r.DB, `SELECT EXISTS(SELECT 1 FROM admins WHERE admin_cognito_id = $1)`, adminCognitoID)
}
