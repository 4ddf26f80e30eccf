package models

// EntityKind identifies one batch type handled by the seeder.
type EntityKind string

const (
	KindAdmin             EntityKind = "Admin"
	KindUser              EntityKind = "User"
	KindCatalog           EntityKind = "Catalog"
	KindSellingPrice      EntityKind = "SellingPrice"
	KindOutLots           EntityKind = "OutLots"
	KindStocks            EntityKind = "Stocks"
	KindStockAssignment   EntityKind = "StockAssignment"
	KindShipment          EntityKind = "Shipment"
	KindShipmentItem      EntityKind = "ShipmentItem"
	KindStockHistory      EntityKind = "StockHistory"
	KindShipmentHistory   EntityKind = "ShipmentHistory"
	KindAdminNotification EntityKind = "AdminNotification"
	KindContact           EntityKind = "Contact"
	KindFavorite          EntityKind = "Favorite"
	KindReport            EntityKind = "Report"
)

// LoadOrder is the dependency order batches are loaded in. Later kinds
// reference rows created by earlier ones.
var LoadOrder = []EntityKind{
	KindAdmin,
	KindUser,
	KindCatalog,
	KindSellingPrice,
	KindOutLots,
	KindStocks,
	KindStockAssignment,
	KindShipment,
	KindShipmentItem,
	KindStockHistory,
	KindShipmentHistory,
	KindAdminNotification,
	KindContact,
	KindFavorite,
	KindReport,
}

var entityFiles = map[EntityKind]string{
	KindAdmin:             "admin",
	KindUser:              "user",
	KindCatalog:           "catalog",
	KindSellingPrice:      "sellingPrice",
	KindOutLots:           "outLots",
	KindStocks:            "stocks",
	KindStockAssignment:   "stockAssignment",
	KindShipment:          "shipment",
	KindShipmentItem:      "shipmentItem",
	KindStockHistory:      "stockHistory",
	KindShipmentHistory:   "shipmentHistory",
	KindAdminNotification: "adminNotification",
	KindContact:           "contact",
	KindFavorite:          "favorite",
	KindReport:            "report",
}

var entityTables = map[EntityKind]string{
	KindAdmin:             "admins",
	KindUser:              "users",
	KindCatalog:           "catalogs",
	KindSellingPrice:      "selling_prices",
	KindOutLots:           "out_lots",
	KindStocks:            "stocks",
	KindStockAssignment:   "stock_assignments",
	KindShipment:          "shipments",
	KindShipmentItem:      "shipment_items",
	KindStockHistory:      "stock_histories",
	KindShipmentHistory:   "shipment_histories",
	KindAdminNotification: "admin_notifications",
	KindContact:           "contacts",
	KindFavorite:          "favorites",
	KindReport:            "reports",
}

// FileName returns the batch file base name (without extension).
func (k EntityKind) FileName() string {
	if name, ok := entityFiles[k]; ok {
		return name
	}
	return string(k)
}

// Table returns the Postgres table backing the entity, or "" when unknown.
func (k EntityKind) Table() string {
	return entityTables[k]
}

// Known reports whether k is one of the built-in entity kinds.
func (k EntityKind) Known() bool {
	_, ok := entityTables[k]
	return ok
}
