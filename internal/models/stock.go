package models

import "time"

// Stock is the on-hand inventory for a lot. Weight only changes through the
// stock ledger and never drops below zero.
type Stock struct {
	ID                 int64     `json:"-"`
	LotNo              string    `json:"lotNo" validate:"required"`
	Mark               string    `json:"mark"`
	SaleCode           string    `json:"saleCode"`
	Grade              string    `json:"grade" validate:"required,grade"`
	Broker             string    `json:"broker" validate:"required,broker"`
	Invoice            string    `json:"invoice"`
	Bags               int       `json:"bags" validate:"gt=0"`
	Weight             float64   `json:"weight" validate:"gt=0"`
	PurchaseValue      float64   `json:"purchaseValue" validate:"gte=0"`
	TotalPurchaseValue float64   `json:"totalPurchaseValue" validate:"gte=0"`
	AgingDays          int       `json:"agingDays" validate:"gte=0"`
	Penalty            float64   `json:"penalty" validate:"gte=0"`
	Commission         float64   `json:"commission" validate:"gte=0"`
	NetPrice           float64   `json:"netPrice" validate:"gte=0"`
	Total              float64   `json:"total" validate:"gte=0"`
	BatchNumber        string    `json:"batchNumber"`
	LowStockThreshold  *float64  `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
	AdminCognitoID     string    `json:"adminCognitoId" validate:"required"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// StockAssignment reserves part of a stock's weight for a user.
type StockAssignment struct {
	ID             int64     `json:"id"`
	StockID        int64     `json:"stockId"`
	UserCognitoID  string    `json:"userCognitoId"`
	AssignedWeight float64   `json:"assignedWeight"`
	AssignedAt     time.Time `json:"assignedAt"`
}

// StockAssignmentRecord is the batch input for a stock assignment.
type StockAssignmentRecord struct {
	LotNo          string     `json:"lotNo"`
	UserCognitoID  string     `json:"userCognitoId"`
	AssignedWeight float64    `json:"assignedWeight"`
	AssignedAt     *time.Time `json:"assignedAt,omitempty"`
}
