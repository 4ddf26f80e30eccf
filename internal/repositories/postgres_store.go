package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tea-backend/internal/errs"
)

// PostgresStore is a Store bound to one transaction (or savepoint).
type PostgresStore struct {
	tx pgx.Tx

	*AdminRepository
	*UserRepository
	*LotRepository
	*StockRepository
	*ShipmentRepository
	*HistoryRepository
	*MiscRepository
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(tx pgx.Tx) *PostgresStore {
	return &PostgresStore{
		tx:                 tx,
		AdminRepository:    NewAdminRepository(tx),
		UserRepository:     NewUserRepository(tx),
		LotRepository:      NewLotRepository(tx),
		StockRepository:    NewStockRepository(tx),
		ShipmentRepository: NewShipmentRepository(tx),
		HistoryRepository:  NewHistoryRepository(tx),
		MiscRepository:     NewMiscRepository(tx),
	}
}

// Savepoint uses a pgx nested transaction, which Postgres runs as
// SAVEPOINT / ROLLBACK TO SAVEPOINT. Without it one failed statement would
// abort the whole batch transaction.
func (s *PostgresStore) Savepoint(ctx context.Context, fn func(Store) error) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return errs.Infrastructure("begin savepoint", err)
	}

	if err := fn(NewPostgresStore(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return errs.Infrastructure("rollback savepoint", rbErr)
		}
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return errs.Infrastructure("release savepoint", err)
	}
	return nil
}
