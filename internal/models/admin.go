package models

import "time"

// Admin is a back-office administrator. Admins are upserted by cognito id.
type Admin struct {
	AdminCognitoID string    `json:"adminCognitoId" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	PhoneNumber    string    `json:"phoneNumber"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a buyer account. The cognito id is immutable once created.
type User struct {
	ID            *int64    `json:"id,omitempty"` // ignored on load, the database assigns ids
	UserCognitoID string    `json:"userCognitoId" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
	PhoneNumber   string    `json:"phoneNumber"`
	Role          string    `json:"role" validate:"omitempty,oneof=user admin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
