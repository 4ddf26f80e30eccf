package repositories

import (
	"context"
	"fmt"

	"tea-backend/internal/models"
)

type UserRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts u. Any id on u is ignored and replaced with the one
// assigned by the database.
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleUser // Default role
	}

	var id int64
	err := r.DB.QueryRow(ctx,
		`INSERT INTO users(user_cognito_id, name, email, phone_number, role, created_at, updated_at)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id`,
		u.UserCognitoID, u.Name, u.Email, u.PhoneNumber, u.Role, u.CreatedAt, u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", u.UserCognitoID, err)
	}
	u.ID = &id
	return nil
}

func (r *UserRepository) UserExists(ctx context.Context, userCognitoID string) (bool, error) {
	return exists(ctx, r.DB, `SELECT EXISTS(SELECT 1 FROM users WHERE user_cognito_id = $1)`, userCognitoID)
}
