package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tea-backend/internal/errs"
	"tea-backend/internal/logger"
	"tea-backend/internal/metrics"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
	"tea-backend/internal/timeutil"
)

// DefaultDuplicateWindow is how far back the ledger looks for an identical
// audit row when the caller gives no operation id.
const DefaultDuplicateWindow = 2 * time.Second

// Actor is who an adjustment is attributed to. Either may be nil.
type Actor struct {
	UserCognitoID  *string
	AdminCognitoID *string
}

// AdjustRequest describes one weight change. Change is negative for
// consumption.
type AdjustRequest struct {
	LotNo      string
	Change     float64
	Reason     string
	Actor      Actor
	ShipmentID *int64
	// OperationID identifies the business operation behind the change. Two
	// requests with the same stock, reason and operation id share one audit
	// row.
	OperationID string
	Details     json.RawMessage
}

// Adjustment is the outcome of Adjust.
type Adjustment struct {
	StockID   int64
	OldWeight float64
	NewWeight float64
	// Dropped is set when the change would have taken the weight below zero
	// and nothing was written.
	Dropped bool
	// Audited is false when an identical audit row already existed.
	Audited bool
}

// StockLedgerService is the only writer of Stock.weight.
type StockLedgerService struct {
	DuplicateWindow time.Duration
	Now             func() time.Time
}

func NewStockLedgerService(window time.Duration, now func() time.Time) *StockLedgerService {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	if now == nil {
		now = timeutil.Now
	}
	return &StockLedgerService{DuplicateWindow: window, Now: now}
}

// IdempotencyKey derives the audit key for an adjustment.
func IdempotencyKey(stockID int64, action, operationID string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%s", stockID, action, operationID)
	return hex.EncodeToString(h.Sum(nil))
}

// FormatWeight renders a weight without float noise, 300 not 300.000000.
func FormatWeight(w float64) string {
	return decimal.NewFromFloat(w).String()
}

// Adjust applies req.Change to the stock and appends its audit row. All
// writes go through store, so they commit or roll back with the caller.
func (l *StockLedgerService) Adjust(ctx context.Context, store repositories.Store, req AdjustRequest) (*Adjustment, error) {
	stock, err := store.GetStockByLotNo(ctx, req.LotNo)
	if err != nil {
		return nil, err
	}

	current := decimal.NewFromFloat(stock.Weight)
	next := current.Add(decimal.NewFromFloat(req.Change))
	adj := &Adjustment{StockID: stock.ID, OldWeight: stock.Weight}

	if next.IsNegative() {
		logger.Warn("stock adjustment dropped",
			zap.String("lot_no", req.LotNo),
			zap.Error(errs.NegativeBalance(req.LotNo, stock.Weight, req.Change)),
		)
		metrics.LedgerAdjustmentsTotal.WithLabelValues(metrics.LedgerDropped).Inc()
		adj.NewWeight = stock.Weight
		adj.Dropped = true
		return adj, nil
	}

	now := l.Now()
	newWeight := next.InexactFloat64()
	if err := store.UpdateStockWeight(ctx, stock.ID, newWeight, now); err != nil {
		return nil, fmt.Errorf("failed to persist weight for %s: %w", req.LotNo, err)
	}
	adj.NewWeight = newWeight

	action := req.Reason
	if action == "" {
		action = models.DefaultStockAction
	}

	duplicate, key, err := l.alreadyAudited(ctx, store, stock.ID, action, req.OperationID, now)
	if err != nil {
		return nil, err
	}
	if duplicate {
		logger.Debug("audit row already present",
			zap.String("lot_no", req.LotNo),
			zap.String("action", action),
		)
		metrics.LedgerAdjustmentsTotal.WithLabelValues(metrics.LedgerDeduplicated).Inc()
		return adj, nil
	}

	history := &models.StockHistory{
		StockID:        stock.ID,
		Action:         action,
		UserCognitoID:  req.Actor.UserCognitoID,
		AdminCognitoID: req.Actor.AdminCognitoID,
		ShipmentID:     req.ShipmentID,
		Details:        req.Details,
		IdempotencyKey: key,
		Timestamp:      now,
	}
	if err := store.CreateStockHistory(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to append stock history for %s: %w", req.LotNo, err)
	}

	adj.Audited = true
	metrics.LedgerAdjustmentsTotal.WithLabelValues(metrics.LedgerApplied).Inc()
	return adj, nil
}

// alreadyAudited looks up the content-addressed key when an operation id is
// given, otherwise falls back to a same-action-within-window check.
func (l *StockLedgerService) alreadyAudited(ctx context.Context, store repositories.Store, stockID int64, action, operationID string, now time.Time) (bool, *string, error) {
	if operationID != "" {
		key := IdempotencyKey(stockID, action, operationID)
		found, err := store.StockHistoryExists(ctx, key)
		if err != nil {
			return false, nil, fmt.Errorf("failed to check stock history key: %w", err)
		}
		return found, &key, nil
	}

	found, err := store.RecentStockHistoryExists(ctx, stockID, action, now.Add(-l.DuplicateWindow))
	if err != nil {
		return false, nil, fmt.Errorf("failed to check for duplicate stock history: %w", err)
	}
	return found, nil, nil
}
