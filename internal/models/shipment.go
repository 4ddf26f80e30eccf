package models

import "time"

// Shipment status values
const (
	ShipmentStatusPending   = "Pending"
	ShipmentStatusApproved  = "Approved"
	ShipmentStatusShipped   = "Shipped"
	ShipmentStatusDelivered = "Delivered"
	ShipmentStatusCancelled = "Cancelled"
)

// Shipment is a user's outbound consignment, identified by its shipmark.
type Shipment struct {
	ID             int64     `json:"id"`
	Shipmark       string    `json:"shipmark"`
	Status         string    `json:"status"`
	Vessel         string    `json:"vessel"`
	Packaging      string    `json:"packagingInstructions"`
	Consignee      string    `json:"consignee"`
	UserCognitoID  string    `json:"userCognitoId"`
	AdminCognitoID *string   `json:"adminCognitoId,omitempty"`
	ShipmentDate   time.Time `json:"shipmentDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ShipmentItem draws weight from one stock into a shipment.
type ShipmentItem struct {
	ID             int64   `json:"id"`
	ShipmentID     int64   `json:"shipmentId"`
	StockID        int64   `json:"stockId"`
	AssignedWeight float64 `json:"assignedWeight"`
}

// ShipmentRecord is the batch input for a shipment with nested line items.
type ShipmentRecord struct {
	Shipmark       string               `json:"shipmark" validate:"required"`
	Status         string               `json:"status" validate:"required,shipment_status"`
	Vessel         string               `json:"vessel" validate:"required,vessel"`
	Packaging      string               `json:"packagingInstructions" validate:"required,packaging"`
	Consignee      string               `json:"consignee"`
	UserCognitoID  string               `json:"userCognitoId" validate:"required"`
	AdminCognitoID *string              `json:"adminCognitoId,omitempty"`
	ShipmentDate   *time.Time           `json:"shipmentDate,omitempty"`
	Items          []ShipmentItemRecord `json:"items"`
}

// ShipmentItemRecord is a line item, either nested in a shipment or standalone
// (Shipmark set).
type ShipmentItemRecord struct {
	Shipmark       string  `json:"shipmark,omitempty"`
	LotNo          string  `json:"lotNo"`
	AssignedWeight float64 `json:"assignedWeight"`
}
