// Package memstore is an in-memory repositories.Database. Transactions and
// savepoints snapshot the whole state and restore it on error. It backs
// dry runs and the service tests.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"tea-backend/internal/errs"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
)

// RawRecord is a record stored through InsertRaw.
type RawRecord struct {
	Entity  string
	Payload json.RawMessage
}

type state struct {
	nextID int64

	admins        map[string]models.Admin
	users         map[string]models.User
	catalogs      map[string]models.Catalog
	sellingPrices map[string]models.SellingPrice
	outLots       map[string]models.OutLot
	stocks        map[string]models.Stock // by lotNo

	assignments       []models.StockAssignment
	shipments         []models.Shipment
	shipmentItems     []models.ShipmentItem
	stockHistories    []models.StockHistory
	shipmentHistories []models.ShipmentHistory
	notifications     []models.AdminNotification
	contacts          []models.Contact
	favorites         []models.Favorite
	reports           []models.Report
	raw               []RawRecord
	extra             map[string]int64 // row counts of tables the seeder does not know
}

func newState() *state {
	return &state{
		admins:        map[string]models.Admin{},
		users:         map[string]models.User{},
		catalogs:      map[string]models.Catalog{},
		sellingPrices: map[string]models.SellingPrice{},
		outLots:       map[string]models.OutLot{},
		stocks:        map[string]models.Stock{},
		extra:         map[string]int64{},
	}
}

func (s *state) clone() *state {
	return &state{
		nextID:            s.nextID,
		admins:            maps.Clone(s.admins),
		users:             maps.Clone(s.users),
		catalogs:          maps.Clone(s.catalogs),
		sellingPrices:     maps.Clone(s.sellingPrices),
		outLots:           maps.Clone(s.outLots),
		stocks:            maps.Clone(s.stocks),
		assignments:       slices.Clone(s.assignments),
		shipments:         slices.Clone(s.shipments),
		shipmentItems:     slices.Clone(s.shipmentItems),
		stockHistories:    slices.Clone(s.stockHistories),
		shipmentHistories: slices.Clone(s.shipmentHistories),
		notifications:     slices.Clone(s.notifications),
		contacts:          slices.Clone(s.contacts),
		favorites:         slices.Clone(s.favorites),
		reports:           slices.Clone(s.reports),
		raw:               slices.Clone(s.raw),
		extra:             maps.Clone(s.extra),
	}
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// DB implements repositories.Database in memory. Transactions are serialised.
type DB struct {
	mu sync.Mutex
	st *state

	// PingErr is returned by Ping when set.
	PingErr error
	// FailTables makes Truncate and Count fail for the named tables.
	FailTables map[string]error
}

var _ repositories.Database = (*DB)(nil)

func New() *DB {
	return &DB{st: newState(), FailTables: map[string]error{}}
}

// AddTable registers a table unknown to the seeder holding rows rows, so
// resets can be tested against foreign tables.
func (d *DB) AddTable(name string, rows int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.extra[name] = rows
}

func (d *DB) Ping(ctx context.Context) error {
	if d.PingErr != nil {
		return errs.Infrastructure("database unreachable", d.PingErr)
	}
	return ctx.Err()
}

func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, s repositories.Store) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := d.st.clone()
	if err := fn(ctx, &store{db: d}); err != nil {
		d.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		d.st = snapshot
		return errs.Infrastructure("commit transaction", err)
	}
	return nil
}

func (d *DB) Tables(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tables := []string{"raw_records"}
	for _, kind := range models.LoadOrder {
		tables = append(tables, kind.Table())
	}
	for name := range d.st.extra {
		tables = append(tables, name)
	}
	slices.Sort(tables)
	return tables, nil
}

func (d *DB) Truncate(ctx context.Context, tables []string) (map[string]error, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	failed := make(map[string]error)
	for _, table := range tables {
		if err := d.FailTables[table]; err != nil {
			failed[table] = err
			continue
		}
		if err := d.st.truncate(table); err != nil {
			failed[table] = err
		}
	}
	return failed, nil
}

func (d *DB) Count(ctx context.Context, table string) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.FailTables[table]; err != nil {
		return 0, err
	}
	return d.st.count(table)
}

func (d *DB) Close() {}

func (s *state) truncate(table string) error {
	switch table {
	case "admins":
		s.admins = map[string]models.Admin{}
	case "users":
		s.users = map[string]models.User{}
	case "catalogs":
		s.catalogs = map[string]models.Catalog{}
	case "selling_prices":
		s.sellingPrices = map[string]models.SellingPrice{}
	case "out_lots":
		s.outLots = map[string]models.OutLot{}
	case "stocks":
		s.stocks = map[string]models.Stock{}
	case "stock_assignments":
		s.assignments = nil
	case "shipments":
		s.shipments = nil
	case "shipment_items":
		s.shipmentItems = nil
	case "stock_histories":
		s.stockHistories = nil
	case "shipment_histories":
		s.shipmentHistories = nil
	case "admin_notifications":
		s.notifications = nil
	case "contacts":
		s.contacts = nil
	case "favorites":
		s.favorites = nil
	case "reports":
		s.reports = nil
	case "raw_records":
		s.raw = nil
	default:
		if _, ok := s.extra[table]; !ok {
			return fmt.Errorf("relation %q does not exist", table)
		}
		s.extra[table] = 0
	}
	return nil
}

func (s *state) count(table string) (int64, error) {
	var n int
	switch table {
	case "admins":
		n = len(s.admins)
	case "users":
		n = len(s.users)
	case "catalogs":
		n = len(s.catalogs)
	case "selling_prices":
		n = len(s.sellingPrices)
	case "out_lots":
		n = len(s.outLots)
	case "stocks":
		n = len(s.stocks)
	case "stock_assignments":
		n = len(s.assignments)
	case "shipments":
		n = len(s.shipments)
	case "shipment_items":
		n = len(s.shipmentItems)
	case "stock_histories":
		n = len(s.stockHistories)
	case "shipment_histories":
		n = len(s.shipmentHistories)
	case "admin_notifications":
		n = len(s.notifications)
	case "contacts":
		n = len(s.contacts)
	case "favorites":
		n = len(s.favorites)
	case "reports":
		n = len(s.reports)
	case "raw_records":
		n = len(s.raw)
	default:
		rows, ok := s.extra[table]
		if !ok {
			return 0, fmt.Errorf("relation %q does not exist", table)
		}
		return rows, nil
	}
	return int64(n), nil
}

// store is the transactional view handed to WithinTx callbacks. It works on
// the live state; WithinTx and Savepoint restore snapshots on error.
type store struct {
	db *DB
}

var _ repositories.Store = (*store)(nil)

func (s *store) st() *state { return s.db.st }

func (s *store) Savepoint(ctx context.Context, fn func(repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return errs.Infrastructure("begin savepoint", err)
	}
	snapshot := s.st().clone()
	if err := fn(s); err != nil {
		s.db.st = snapshot
		return err
	}
	return nil
}

func duplicateKey(constraint string) error {
	return fmt.Errorf("duplicate key value violates unique constraint %q", constraint)
}

func (s *store) UpsertAdmin(ctx context.Context, a *models.Admin) error {
	st := s.st()
	for id, other := range st.admins {
		if id != a.AdminCognitoID && strings.EqualFold(other.Email, a.Email) {
			return duplicateKey("admins_email_key")
		}
	}
	if existing, ok := st.admins[a.AdminCognitoID]; ok {
		a.CreatedAt = existing.CreatedAt
	}
	st.admins[a.AdminCognitoID] = *a
	return nil
}

func (s *store) AdminExists(ctx context.Context, adminCognitoID string) (bool, error) {
	_, ok := s.st().admins[adminCognitoID]
	return ok, nil
}

func (s *store) CreateUser(ctx context.Context, u *models.User) error {
	st := s.st()
	if _, ok := st.users[u.UserCognitoID]; ok {
		return duplicateKey("users_user_cognito_id_key")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	id := st.id()
	u.ID = &id
	st.users[u.UserCognitoID] = *u
	return nil
}

func (s *store) UserExists(ctx context.Context, userCognitoID string) (bool, error) {
	_, ok := s.st().users[userCognitoID]
	return ok, nil
}

func (s *store) LotExists(ctx context.Context, kind models.EntityKind, lotNo string) (bool, error) {
	st := s.st()
	var ok bool
	switch kind {
	case models.KindCatalog:
		_, ok = st.catalogs[lotNo]
	case models.KindSellingPrice:
		_, ok = st.sellingPrices[lotNo]
	case models.KindOutLots:
		_, ok = st.outLots[lotNo]
	case models.KindStocks:
		_, ok = st.stocks[lotNo]
	default:
		return false, fmt.Errorf("entity %s has no lot number", kind)
	}
	return ok, nil
}

func (s *store) CreateCatalog(ctx context.Context, c *models.Catalog) error {
	st := s.st()
	if _, ok := st.catalogs[c.LotNo]; ok {
		return duplicateKey("catalogs_lot_no_key")
	}
	c.ID = st.id()
	st.catalogs[c.LotNo] = *c
	return nil
}

func (s *store) CreateSellingPrice(ctx context.Context, p *models.SellingPrice) error {
	st := s.st()
	if _, ok := st.sellingPrices[p.LotNo]; ok {
		return duplicateKey("selling_prices_lot_no_key")
	}
	p.ID = st.id()
	st.sellingPrices[p.LotNo] = *p
	return nil
}

func (s *store) CreateOutLot(ctx context.Context, o *models.OutLot) error {
	st := s.st()
	if _, ok := st.outLots[o.LotNo]; ok {
		return duplicateKey("out_lots_lot_no_key")
	}
	o.ID = st.id()
	st.outLots[o.LotNo] = *o
	return nil
}

func (s *store) CreateStock(ctx context.Context, stock *models.Stock) error {
	st := s.st()
	if _, ok := st.stocks[stock.LotNo]; ok {
		return duplicateKey("stocks_lot_no_key")
	}
	stock.ID = st.id()
	st.stocks[stock.LotNo] = *stock
	return nil
}

func (s *store) GetStockByLotNo(ctx context.Context, lotNo string) (*models.Stock, error) {
	stock, ok := s.st().stocks[lotNo]
	if !ok {
		return nil, errs.NotFound(string(models.KindStocks), lotNo)
	}
	return &stock, nil
}

func (s *store) UpdateStockWeight(ctx context.Context, stockID int64, weight float64, at time.Time) error {
	if weight < 0 {
		return errors.New(`new row for relation "stocks" violates check constraint "stocks_weight_check"`)
	}
	st := s.st()
	for lotNo, stock := range st.stocks {
		if stock.ID == stockID {
			stock.Weight = weight
			stock.UpdatedAt = at
			st.stocks[lotNo] = stock
			return nil
		}
	}
	return errs.NotFound(string(models.KindStocks), fmt.Sprintf("id=%d", stockID))
}

func (s *store) AssignmentExists(ctx context.Context, stockID int64, userCognitoID string) (bool, error) {
	for _, a := range s.st().assignments {
		if a.StockID == stockID && a.UserCognitoID == userCognitoID {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) CreateAssignment(ctx context.Context, a *models.StockAssignment) error {
	if found, _ := s.AssignmentExists(ctx, a.StockID, a.UserCognitoID); found {
		return duplicateKey("stock_assignments_stock_id_user_cognito_id_key")
	}
	st := s.st()
	a.ID = st.id()
	st.assignments = append(st.assignments, *a)
	return nil
}

func (s *store) ShipmentExists(ctx context.Context, shipmark string) (bool, error) {
	_, err := s.GetShipmentByShipmark(ctx, shipmark)
	return err == nil, nil
}

func (s *store) GetShipmentByShipmark(ctx context.Context, shipmark string) (*models.Shipment, error) {
	for _, sh := range s.st().shipments {
		if sh.Shipmark == shipmark {
			return &sh, nil
		}
	}
	return nil, errs.NotFound(string(models.KindShipment), shipmark)
}

func (s *store) CreateShipment(ctx context.Context, sh *models.Shipment) error {
	if found, _ := s.ShipmentExists(ctx, sh.Shipmark); found {
		return duplicateKey("shipments_shipmark_key")
	}
	st := s.st()
	sh.ID = st.id()
	st.shipments = append(st.shipments, *sh)
	return nil
}

func (s *store) ShipmentItemExists(ctx context.Context, shipmentID, stockID int64) (bool, error) {
	for _, i := range s.st().shipmentItems {
		if i.ShipmentID == shipmentID && i.StockID == stockID {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) CreateShipmentItem(ctx context.Context, i *models.ShipmentItem) error {
	if found, _ := s.ShipmentItemExists(ctx, i.ShipmentID, i.StockID); found {
		return duplicateKey("shipment_items_shipment_id_stock_id_key")
	}
	st := s.st()
	i.ID = st.id()
	st.shipmentItems = append(st.shipmentItems, *i)
	return nil
}

func (s *store) StockHistoryExists(ctx context.Context, idempotencyKey string) (bool, error) {
	for _, h := range s.st().stockHistories {
		if h.IdempotencyKey != nil && *h.IdempotencyKey == idempotencyKey {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) RecentStockHistoryExists(ctx context.Context, stockID int64, action string, since time.Time) (bool, error) {
	for _, h := range s.st().stockHistories {
		if h.StockID == stockID && h.Action == action && !h.Timestamp.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) CreateStockHistory(ctx context.Context, h *models.StockHistory) error {
	if h.IdempotencyKey != nil {
		if found, _ := s.StockHistoryExists(ctx, *h.IdempotencyKey); found {
			return duplicateKey("stock_histories_idempotency_key_key")
		}
	}
	st := s.st()
	h.ID = st.id()
	st.stockHistories = append(st.stockHistories, *h)
	return nil
}

func (s *store) CreateShipmentHistory(ctx context.Context, h *models.ShipmentHistory) error {
	st := s.st()
	h.ID = st.id()
	st.shipmentHistories = append(st.shipmentHistories, *h)
	return nil
}

func (s *store) CreateAdminNotification(ctx context.Context, n *models.AdminNotification) error {
	if len(n.Details) == 0 {
		return errors.New(`null value in column "details" violates not-null constraint`)
	}
	st := s.st()
	n.ID = st.id()
	st.notifications = append(st.notifications, *n)
	return nil
}

func (s *store) CreateContact(ctx context.Context, c *models.Contact) error {
	st := s.st()
	c.ID = st.id()
	st.contacts = append(st.contacts, *c)
	return nil
}

func (s *store) FavoriteExists(ctx context.Context, userCognitoID string, stockID *int64) (bool, error) {
	for _, f := range s.st().favorites {
		if f.UserCognitoID != userCognitoID {
			continue
		}
		if (f.StockID == nil && stockID == nil) || (f.StockID != nil && stockID != nil && *f.StockID == *stockID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	st := s.st()
	f.ID = st.id()
	st.favorites = append(st.favorites, *f)
	return nil
}

func (s *store) CreateReport(ctx context.Context, r *models.Report) error {
	st := s.st()
	r.ID = st.id()
	st.reports = append(st.reports, *r)
	return nil
}

func (s *store) InsertRaw(ctx context.Context, entity string, payload json.RawMessage) error {
	st := s.st()
	st.raw = append(st.raw, RawRecord{Entity: entity, Payload: slices.Clone(payload)})
	return nil
}
