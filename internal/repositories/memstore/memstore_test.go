package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tea-backend/internal/errs"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
)

func seedStock(t *testing.T, db *DB, lotNo string, weight float64) {
	t.Helper()
	err := db.WithinTx(context.Background(), func(ctx context.Context, s repositories.Store) error {
		return s.CreateStock(ctx, &models.Stock{LotNo: lotNo, Grade: "BP1", Broker: "AMBR", Bags: 1, Weight: weight, AdminCognitoID: "A1"})
	})
	require.NoError(t, err)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db := New()
	seedStock(t, db, "L1", 100)

	boom := errors.New("boom")
	err := db.WithinTx(context.Background(), func(ctx context.Context, s repositories.Store) error {
		stock, err := s.GetStockByLotNo(ctx, "L1")
		require.NoError(t, err)
		require.NoError(t, s.UpdateStockWeight(ctx, stock.ID, 10, time.Now()))
		require.NoError(t, s.CreateUser(ctx, &models.User{UserCognitoID: "U1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stock, ok := db.Stock("L1")
	require.True(t, ok)
	assert.Equal(t, 100.0, stock.Weight)
	_, ok = db.User("U1")
	assert.False(t, ok)
}

func TestSavepoint_IsolatesFailedRecord(t *testing.T) {
	db := New()

	err := db.WithinTx(context.Background(), func(ctx context.Context, s repositories.Store) error {
		require.NoError(t, s.Savepoint(ctx, func(sp repositories.Store) error {
			return sp.CreateUser(ctx, &models.User{UserCognitoID: "U1"})
		}))
		err := s.Savepoint(ctx, func(sp repositories.Store) error {
			require.NoError(t, sp.CreateUser(ctx, &models.User{UserCognitoID: "U2"}))
			return sp.CreateUser(ctx, &models.User{UserCognitoID: "U1"})
		})
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)

	_, ok := db.User("U1")
	assert.True(t, ok)
	_, ok = db.User("U2")
	assert.False(t, ok, "partial record must be rolled back")
}

func TestStockConstraints(t *testing.T) {
	db := New()
	seedStock(t, db, "L1", 100)

	err := db.WithinTx(context.Background(), func(ctx context.Context, s repositories.Store) error {
		_, err := s.GetStockByLotNo(ctx, "missing")
		assert.True(t, errs.Is(err, errs.KindNotFound))

		stock, err := s.GetStockByLotNo(ctx, "L1")
		require.NoError(t, err)
		assert.Error(t, s.UpdateStockWeight(ctx, stock.ID, -1, time.Now()))
		assert.Error(t, s.CreateStock(ctx, &models.Stock{LotNo: "L1"}))

		taken, err := s.LotExists(ctx, models.KindStocks, "L1")
		require.NoError(t, err)
		assert.True(t, taken)
		return nil
	})
	require.NoError(t, err)
}

func TestTruncateAndCount(t *testing.T) {
	db := New()
	seedStock(t, db, "L1", 100)
	db.AddTable("legacy_audit", 3)
	db.FailTables["contacts"] = errors.New("permission denied")

	tables, err := db.Tables(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tables, "legacy_audit")
	assert.Contains(t, tables, "stocks")

	failed, err := db.Truncate(context.Background(), []string{"stocks", "contacts", "legacy_audit", "nope"})
	require.NoError(t, err)
	assert.Len(t, failed, 2)
	assert.Contains(t, failed, "contacts")
	assert.Contains(t, failed, "nope")

	n, err := db.Count(context.Background(), "stocks")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = db.Count(context.Background(), "legacy_audit")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = db.Count(context.Background(), "contacts")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	db := New()
	require.NoError(t, db.Ping(context.Background()))

	db.PingErr = errors.New("connection refused")
	err := db.Ping(context.Background())
	assert.True(t, errs.Is(err, errs.KindInfrastructure))
}
