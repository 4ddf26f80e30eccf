package repositories

import (
	"context"
	"encoding/json"
	"time"

	"tea-backend/internal/models"
)

// AdminStore covers admins and users.
type AdminStore interface {
	UpsertAdmin(ctx context.Context, a *models.Admin) error
	AdminExists(ctx context.Context, adminCognitoID string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	UserExists(ctx context.Context, userCognitoID string) (bool, error)
}

// LotStore covers the lot listings that share the lotNo business key.
type LotStore interface {
	// LotExists reports whether lotNo is taken in the table of kind, which must
	// be one of Catalog, SellingPrice, OutLots or Stocks.
	LotExists(ctx context.Context, kind models.EntityKind, lotNo string) (bool, error)
	CreateCatalog(ctx context.Context, c *models.Catalog) error
	CreateSellingPrice(ctx context.Context, p *models.SellingPrice) error
	CreateOutLot(ctx context.Context, o *models.OutLot) error
}

// StockStore covers stocks and the assignments drawn from them.
type StockStore interface {
	CreateStock(ctx context.Context, s *models.Stock) error
	// GetStockByLotNo returns an errs.KindNotFound error when no stock has lotNo.
	GetStockByLotNo(ctx context.Context, lotNo string) (*models.Stock, error)
	UpdateStockWeight(ctx context.Context, stockID int64, weight float64, at time.Time) error
	AssignmentExists(ctx context.Context, stockID int64, userCognitoID string) (bool, error)
	CreateAssignment(ctx context.Context, a *models.StockAssignment) error
}

// ShipmentStore covers shipment headers and line items.
type ShipmentStore interface {
	ShipmentExists(ctx context.Context, shipmark string) (bool, error)
	// GetShipmentByShipmark returns an errs.KindNotFound error when absent.
	GetShipmentByShipmark(ctx context.Context, shipmark string) (*models.Shipment, error)
	CreateShipment(ctx context.Context, s *models.Shipment) error
	ShipmentItemExists(ctx context.Context, shipmentID, stockID int64) (bool, error)
	CreateShipmentItem(ctx context.Context, i *models.ShipmentItem) error
}

// HistoryStore covers the append-only audit tables.
type HistoryStore interface {
	StockHistoryExists(ctx context.Context, idempotencyKey string) (bool, error)
	// RecentStockHistoryExists reports whether a row for the same stock and
	// action was written at or after since.
	RecentStockHistoryExists(ctx context.Context, stockID int64, action string, since time.Time) (bool, error)
	CreateStockHistory(ctx context.Context, h *models.StockHistory) error
	CreateShipmentHistory(ctx context.Context, h *models.ShipmentHistory) error
}

// MiscStore covers the peripheral entities outside the ledger.
type MiscStore interface {
	CreateAdminNotification(ctx context.Context, n *models.AdminNotification) error
	CreateContact(ctx context.Context, c *models.Contact) error
	FavoriteExists(ctx context.Context, userCognitoID string, stockID *int64) (bool, error)
	CreateFavorite(ctx context.Context, f *models.Favorite) error
	CreateReport(ctx context.Context, r *models.Report) error
	// InsertRaw stores a record of an entity type without a dedicated table.
	InsertRaw(ctx context.Context, entity string, payload json.RawMessage) error
}

// Store is the transactional view the loader and the stock ledger work on.
type Store interface {
	AdminStore
	LotStore
	StockStore
	ShipmentStore
	HistoryStore
	MiscStore

	// Savepoint runs fn in a nested unit of work. When fn returns an error
	// everything it wrote is rolled back and the outer work stays usable.
	// Failures of the savepoint itself are errs.KindInfrastructure.
	Savepoint(ctx context.Context, fn func(Store) error) error
}

// Database is the run-level handle used by the orchestrator.
type Database interface {
	Ping(ctx context.Context) error
	// WithinTx runs fn in one transaction, committed only when fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
	// Tables lists the existing entity tables.
	Tables(ctx context.Context) ([]string, error)
	// Truncate empties tables in the given order with referential checks
	// deferred. Per-table failures are returned in the map and do not stop
	// the rest; the error is for failures affecting the whole reset.
	Truncate(ctx context.Context, tables []string) (map[string]error, error)
	Count(ctx context.Context, table string) (int64, error)
	Close()
}
