package models

import (
	"encoding/json"
	"time"
)

// AdminNotification is a message for an admin, created when stock is assigned
// or loaded directly from a batch.
type AdminNotification struct {
	ID             int64           `json:"id"`
	AdminCognitoID string          `json:"adminCognitoId"`
	Message        string          `json:"message"`
	Details        json.RawMessage `json:"details"`
	IsRead         bool            `json:"isRead"`
	CreatedAt      time.Time       `json:"createdAt"`
}
