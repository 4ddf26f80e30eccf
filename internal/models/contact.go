package models

import "time"

// Contact is a contact-form submission.
type Contact struct {
	ID             int64     `json:"-"`
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message" validate:"required"`
	PrivacyConsent *bool     `json:"privacyConsent" validate:"required"`
	UserCognitoID  *string   `json:"userCognitoId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Favorite marks a stock lot as a user's favorite.
type Favorite struct {
	ID            int64     `json:"id"`
	UserCognitoID string    `json:"userCognitoId"`
	StockID       *int64    `json:"stockId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FavoriteRecord is the batch input for a favorite.
type FavoriteRecord struct {
	UserCognitoID string  `json:"userCognitoId"`
	LotNo         *string `json:"lotNo,omitempty"`
}

// Report is an uploaded report file published by an admin.
type Report struct {
	ID             int64     `json:"-"`
	AdminCognitoID string    `json:"adminCognitoId" validate:"required"`
	UserCognitoID  *string   `json:"userCognitoId,omitempty"`
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	FileURL        string    `json:"fileUrl" validate:"required"`
	FileType       string    `json:"fileType" validate:"required,report_file_type"`
	CreatedAt      time.Time `json:"createdAt"`
}
