package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"tea-backend/internal/errs"
	"tea-backend/internal/logger"
)

// PostgresDatabase is the Database backed by a pgx pool.
type PostgresDatabase struct {
	Pool *pgxpool.Pool
}

var _ Database = (*PostgresDatabase)(nil)

func NewPostgresDatabase(pool *pgxpool.Pool) *PostgresDatabase {
	return &PostgresDatabase{Pool: pool}
}

func (d *PostgresDatabase) Ping(ctx context.Context) error {
	if err := d.Pool.Ping(ctx); err != nil {
		return errs.Infrastructure("database unreachable", err)
	}
	return nil
}

func (d *PostgresDatabase) WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return errs.Infrastructure("begin transaction", err)
	}
	// Rollback after a successful commit is a no-op
	defer tx.Rollback(ctx)

	if err := fn(ctx, NewPostgresStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Infrastructure("commit transaction", err)
	}
	return nil
}

// Tables lists the base tables of the public schema, leaving out the
// migration tracking table.
func (d *PostgresDatabase) Tables(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT tablename FROM pg_tables WHERE schemaname = 'public' AND tablename <> 'schema_migrations' ORDER BY tablename`)
	if err != nil {
		return nil, errs.Infrastructure("list tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Infrastructure("scan table name", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infrastructure("list tables", err)
	}
	return tables, nil
}

// Truncate runs on one connection outside a transaction so that a failing
// table does not poison the statements after it.
func (d *PostgresDatabase) Truncate(ctx context.Context, tables []string) (map[string]error, error) {
	conn, err := d.Pool.Acquire(ctx)
	if err != nil {
		return nil, errs.Infrastructure("acquire connection for reset", err)
	}
	defer conn.Release()

	// Disable triggers/FK checks temporarily
	if _, err := conn.Exec(ctx, "SET session_replication_role = 'replica'"); err != nil {
		logger.Warn("could not defer referential checks, relying on CASCADE", zap.Error(err))
	}

	failed := make(map[string]error)
	for _, table := range tables {
		query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", pgx.Identifier{table}.Sanitize())
		if _, err := conn.Exec(ctx, query); err != nil {
			failed[table] = err
			logger.Warn("failed to truncate table", zap.String("table", table), zap.Error(err))
			continue
		}
		logger.Debug("truncated table", zap.String("table", table))
	}

	// Re-enable triggers/FK checks
	if _, err := conn.Exec(ctx, "SET session_replication_role = 'origin'"); err != nil {
		return failed, errs.Infrastructure("restore referential checks", err)
	}
	return failed, nil
}

func (d *PostgresDatabase) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := d.Pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func (d *PostgresDatabase) Close() {
	d.Pool.Close()
}
