package models

import "time"

// Catalog is an auction catalog listing for a lot.
type Catalog struct {
	ID              int64      `json:"-"`
	LotNo           string     `json:"lotNo" validate:"required"`
	Broker          string     `json:"broker" validate:"required,broker"`
	SellingMark     string     `json:"sellingMark" validate:"required"`
	Grade           string     `json:"grade" validate:"required,grade"`
	Invoice         string     `json:"invoice"`
	Bags            int        `json:"bags" validate:"gt=0"`
	NetWeight       float64    `json:"netWeight" validate:"gt=0"`
	TotalWeight     float64    `json:"totalWeight" validate:"gte=0"`
	ProducerCountry string     `json:"producerCountry"`
	ManufactureDate *time.Time `json:"manufactureDate,omitempty"`
	SaleCode        string     `json:"saleCode"`
	Category        string     `json:"category" validate:"required,category"`
	Reprint         *string    `json:"reprint,omitempty" validate:"omitempty,reprint"`
	AdminCognitoID  string     `json:"adminCognitoId" validate:"required"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// SellingPrice is a catalog lot with its realised prices.
type SellingPrice struct {
	Catalog
	AskingPrice   float64 `json:"askingPrice" validate:"gte=0"`
	PurchasePrice float64 `json:"purchasePrice" validate:"gte=0"`
}

// OutLot is a lot withdrawn from auction.
type OutLot struct {
	ID              int64      `json:"-"`
	Auction         string     `json:"auction"`
	LotNo           string     `json:"lotNo" validate:"required"`
	Broker          string     `json:"broker" validate:"required,broker"`
	SellingMark     string     `json:"sellingMark" validate:"required"`
	Grade           string     `json:"grade" validate:"required,grade"`
	Invoice         string     `json:"invoice"`
	Bags            int        `json:"bags" validate:"gt=0"`
	NetWeight       float64    `json:"netWeight" validate:"gt=0"`
	TotalWeight     float64    `json:"totalWeight" validate:"gte=0"`
	BaselinePrice   float64    `json:"baselinePrice" validate:"gte=0"`
	ManufactureDate *time.Time `json:"manufactureDate,omitempty"`
	AdminCognitoID  string     `json:"adminCognitoId" validate:"required"`
	CreatedAt       time.Time  `json:"createdAt"`
}
