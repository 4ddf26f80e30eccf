package repositories

import (
	"context"
	"fmt"

	"tea-backend/internal/models"
)

// LotRepository writes the catalog style listings: catalogs, selling prices
// and out lots.
type LotRepository struct {
	DB DBTX
}

func NewLotRepository(db DBTX) *LotRepository {
	return &LotRepository{DB: db}
}

var lotTables = map[models.EntityKind]string{
	models.KindCatalog:      "catalogs",
	models.KindSellingPrice: "selling_prices",
	models.KindOutLots:      "out_lots",
	models.KindStocks:       "stocks",
}

func (r *LotRepository) LotExists(ctx context.Context, kind models.EntityKind, lotNo string) (bool, error) {
	table, ok := lotTables[kind]
	if !ok {
		return false, fmt.Errorf("entity %s has no lot number", kind)
	}
	// table comes from the fixed map above, never from input
	return exists(ctx, r.DB, fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE lot_no = $1)`, table), lotNo)
}

func (r *LotRepository) CreateCatalog(ctx context.Context, c *models.Catalog) error {
	query := `
		INSERT INTO catalogs (
			lot_no, broker, selling_mark, grade, invoice, bags, net_weight, total_weight,
			producer_country, manufacture_date, sale_code, category, reprint, admin_cognito_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		c.LotNo, c.Broker, c.SellingMark, c.Grade, c.Invoice, c.Bags, c.NetWeight, c.TotalWeight,
		c.ProducerCountry, c.ManufactureDate, c.SaleCode, c.Category, c.Reprint, c.AdminCognitoID, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create catalog %s: %w", c.LotNo, err)
	}
	return nil
}

func (r *LotRepository) CreateSellingPrice(ctx context.Context, p *models.SellingPrice) error {
	query := `
		INSERT INTO selling_prices (
			lot_no, broker, selling_mark, grade, invoice, bags, net_weight, total_weight,
			producer_country, manufacture_date, sale_code, category, reprint,
			asking_price, purchase_price, admin_cognito_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		p.LotNo, p.Broker, p.SellingMark, p.Grade, p.Invoice, p.Bags, p.NetWeight, p.TotalWeight,
		p.ProducerCountry, p.ManufactureDate, p.SaleCode, p.Category, p.Reprint,
		p.AskingPrice, p.PurchasePrice, p.AdminCognitoID, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create selling price %s: %w", p.LotNo, err)
	}
	return nil
}

func (r *LotRepository) CreateOutLot(ctx context.Context, o *models.OutLot) error {
	query := `
		INSERT INTO out_lots (
			auction, lot_no, broker, selling_mark, grade, invoice, bags, net_weight, total_weight,
			baseline_price, manufacture_date, admin_cognito_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		o.Auction, o.LotNo, o.Broker, o.SellingMark, o.Grade, o.Invoice, o.Bags, o.NetWeight, o.TotalWeight,
		o.BaselinePrice, o.ManufactureDate, o.AdminCognitoID, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to create out lot %s: %w", o.LotNo, err)
	}
	return nil
}
