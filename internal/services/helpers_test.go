package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tea-backend/internal/logger"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
	"tea-backend/internal/repositories/memstore"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func init() {
	logger.Set(zap.NewNop())
}

func fixedClock() func() time.Time {
	return func() time.Time { return testNow }
}

// tickingClock advances by step on every call.
func tickingClock(step time.Duration) func() time.Time {
	t := testNow
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func mustRaw(t *testing.T, records ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		b, err := json.Marshal(r)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

// inTx runs fn in a committed memstore transaction.
func inTx(t *testing.T, db *memstore.DB, fn func(ctx context.Context, s repositories.Store) error) {
	t.Helper()
	require.NoError(t, db.WithinTx(context.Background(), fn))
}

// newLedgerFixture has admin A1, users U1 and U2 and stock L100 at 1000 kg.
func newLedgerFixture(t *testing.T) *memstore.DB {
	t.Helper()
	db := memstore.New()
	inTx(t, db, func(ctx context.Context, s repositories.Store) error {
		require.NoError(t, s.UpsertAdmin(ctx, &models.Admin{AdminCognitoID: "A1", Name: "Admin One", Email: "a1@example.com"}))
		require.NoError(t, s.CreateUser(ctx, &models.User{UserCognitoID: "U1", Name: "User One", Email: "u1@example.com"}))
		require.NoError(t, s.CreateUser(ctx, &models.User{UserCognitoID: "U2", Name: "User Two", Email: "u2@example.com"}))
		return s.CreateStock(ctx, &models.Stock{
			LotNo: "L100", Grade: "BP1", Broker: "AMBR", Bags: 20, Weight: 1000, AdminCognitoID: "A1",
		})
	})
	return db
}
