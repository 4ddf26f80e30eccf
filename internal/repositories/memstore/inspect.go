package memstore

import (
	"slices"

	"tea-backend/internal/models"
)

// Read accessors for tests and dry-run reporting.

func (d *DB) Stock(lotNo string) (models.Stock, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.st.stocks[lotNo]
	return s, ok
}

func (d *DB) Admin(adminCognitoID string) (models.Admin, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.st.admins[adminCognitoID]
	return a, ok
}

func (d *DB) User(userCognitoID string) (models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.st.users[userCognitoID]
	return u, ok
}

// StockHistories returns the audit rows of one stock in insertion order.
func (d *DB) StockHistories(stockID int64) []models.StockHistory {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.StockHistory
	for _, h := range d.st.stockHistories {
		if h.StockID == stockID {
			out = append(out, h)
		}
	}
	return out
}

func (d *DB) ShipmentHistories() []models.ShipmentHistory {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.shipmentHistories)
}

func (d *DB) Assignments() []models.StockAssignment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.assignments)
}

func (d *DB) Shipments() []models.Shipment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.shipments)
}

func (d *DB) ShipmentItems() []models.ShipmentItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.shipmentItems)
}

func (d *DB) Notifications() []models.AdminNotification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.notifications)
}

func (d *DB) Favorites() []models.Favorite {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.favorites)
}

func (d *DB) Raw() []RawRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.st.raw)
}
