package models

import (
	"encoding/json"
	"time"
)

// Default audit actions when a history record omits one.
const (
	DefaultStockAction    = "Stock updated"
	DefaultShipmentAction = "Shipment updated"
)

// StockHistory is an append-only audit row for a stock.
type StockHistory struct {
	ID             int64           `json:"id"`
	StockID        int64           `json:"stockId"`
	Action         string          `json:"action"`
	UserCognitoID  *string         `json:"userCognitoId,omitempty"`
	AdminCognitoID *string         `json:"adminCognitoId,omitempty"`
	ShipmentID     *int64          `json:"shipmentId,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	IdempotencyKey *string         `json:"-"`
	Timestamp      time.Time       `json:"timestamp"`
}

// StockHistoryRecord is the batch input for a stock history row.
type StockHistoryRecord struct {
	LotNo          string          `json:"lotNo"`
	Action         string          `json:"action"`
	UserCognitoID  *string         `json:"userCognitoId,omitempty"`
	AdminCognitoID *string         `json:"adminCognitoId,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	Timestamp      *time.Time      `json:"timestamp,omitempty"`
}

// ShipmentHistory is an append-only audit row for a shipment.
type ShipmentHistory struct {
	ID             int64           `json:"id"`
	ShipmentID     int64           `json:"shipmentId"`
	Action         string          `json:"action"`
	UserCognitoID  *string         `json:"userCognitoId,omitempty"`
	AdminCognitoID *string         `json:"adminCognitoId,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ShipmentHistoryRecord is the batch input for a shipment history row.
type ShipmentHistoryRecord struct {
	Shipmark       string          `json:"shipmark"`
	Action         string          `json:"action"`
	UserCognitoID  *string         `json:"userCognitoId,omitempty"`
	AdminCognitoID *string         `json:"adminCognitoId,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	Timestamp      *time.Time      `json:"timestamp,omitempty"`
}
