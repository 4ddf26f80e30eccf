package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tea-backend/internal/errs"
	"tea-backend/internal/logger"
	"tea-backend/internal/metrics"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
	"tea-backend/internal/timeutil"
	"tea-backend/internal/validation"
)

// handlerFunc loads one record. The store it gets is scoped to a savepoint,
// so returning an error discards everything the handler wrote.
type handlerFunc func(ctx context.Context, s repositories.Store, raw json.RawMessage, report models.BatchReport) error

// LoaderService turns decoded batch records into rows.
type LoaderService struct {
	Ledger   *StockLedgerService
	Policies PolicyTable
	Now      func() time.Time

	handlers map[models.EntityKind]handlerFunc
}

func NewLoaderService(ledger *StockLedgerService, policies PolicyTable, now func() time.Time) *LoaderService {
	if policies == nil {
		policies = DefaultPolicies
	}
	if now == nil {
		now = timeutil.Now
	}
	l := &LoaderService{Ledger: ledger, Policies: policies, Now: now}
	l.handlers = map[models.EntityKind]handlerFunc{
		models.KindAdmin:             l.loadAdmin,
		models.KindUser:              l.loadUser,
		models.KindCatalog:           l.loadCatalog,
		models.KindSellingPrice:      l.loadSellingPrice,
		models.KindOutLots:           l.loadOutLot,
		models.KindStocks:            l.loadStock,
		models.KindStockAssignment:   l.loadStockAssignment,
		models.KindShipment:          l.loadShipment,
		models.KindShipmentItem:      l.loadShipmentItem,
		models.KindStockHistory:      l.loadStockHistory,
		models.KindShipmentHistory:   l.loadShipmentHistory,
		models.KindAdminNotification: l.loadAdminNotification,
		models.KindContact:           l.loadContact,
		models.KindFavorite:          l.loadFavorite,
		models.KindReport:            l.loadReport,
	}
	return l
}

// LoadBatch loads every record of one batch into store and reports per-kind
// outcomes. A bad record is counted and skipped. The returned error is
// reserved for batch-level failures: a failed batch precondition or an
// infrastructure error, after which the caller must roll the batch back.
func (l *LoaderService) LoadBatch(ctx context.Context, s repositories.Store, kind models.EntityKind, records []json.RawMessage) (models.BatchReport, error) {
	report := models.NewBatchReport()
	report.Stats(kind)

	if kind == models.KindAdmin {
		if err := checkAdminEmails(records); err != nil {
			return report, err
		}
	}

	handler, ok := l.handlers[kind]
	if !ok {
		handler = l.rawHandler(kind)
	}

	for i, raw := range records {
		err := s.Savepoint(ctx, func(sp repositories.Store) error {
			return handler(ctx, sp, raw, report)
		})
		if err == nil {
			report.Stats(kind).Success++
			metrics.RecordsTotal.WithLabelValues(string(kind), metrics.OutcomeSuccess).Inc()
			continue
		}
		if errs.Is(err, errs.KindInfrastructure) || ctx.Err() != nil {
			return report, fmt.Errorf("%s record %d: %w", kind, i+1, err)
		}
		l.reject(report, kind, i+1, err)
	}
	return report, nil
}

// reject counts a failed record as skipped and, unless the policy for the
// failed check is skip, keeps its message.
func (l *LoaderService) reject(report models.BatchReport, kind models.EntityKind, n int, err error) {
	stats := report.Stats(kind)
	stats.Skipped++

	policy := PolicyFail
	cause := err
	var ce *checkError
	if errors.As(err, &ce) {
		policy = l.Policies.For(kind, ce.check)
		cause = ce.err
	} else if errs.Is(err, errs.KindValidation) {
		policy = l.Policies.For(kind, CheckInvalidRecord)
	}

	if policy == PolicySkip {
		logger.Debug("record skipped",
			zap.String("entity", string(kind)),
			zap.Int("record", n),
			zap.String("reason", cause.Error()),
		)
		metrics.RecordsTotal.WithLabelValues(string(kind), metrics.OutcomeSkipped).Inc()
		return
	}

	msg := fmt.Sprintf("%s #%d: %v", kind, n, cause)
	stats.Errors = append(stats.Errors, msg)
	logger.Warn("record failed",
		zap.String("entity", string(kind)),
		zap.Int("record", n),
		zap.Error(cause),
	)
	metrics.RecordsTotal.WithLabelValues(string(kind), metrics.OutcomeFailed).Inc()
}

// checkAdminEmails fails the whole admin batch when two records share an
// email, compared case-insensitively.
func checkAdminEmails(records []json.RawMessage) error {
	seen := make(map[string]int, len(records))
	for i, raw := range records {
		var rec struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Email == "" {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(rec.Email))
		if first, dup := seen[email]; dup {
			return fmt.Errorf("admin batch rejected, records %d and %d: %w", first, i+1,
				errs.Duplicate(string(models.KindAdmin), "email", rec.Email))
		}
		seen[email] = i + 1
	}
	return nil
}

func decode(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(dst); err != nil {
		return &errs.Error{Kind: errs.KindValidation, Msg: "malformed record", Err: err}
	}
	return nil
}

func (l *LoaderService) requireAdmin(ctx context.Context, s repositories.Store, adminCognitoID string) error {
	ok, err := s.AdminExists(ctx, adminCognitoID)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if !ok {
		return failCheck(CheckMissingAdmin, errs.Reference(string(models.KindAdmin), adminCognitoID))
	}
	return nil
}

func (l *LoaderService) requireUser(ctx context.Context, s repositories.Store, userCognitoID string) error {
	if userCognitoID == "" {
		return errs.Validation("userCognitoId", "", "required")
	}
	ok, err := s.UserExists(ctx, userCognitoID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !ok {
		return failCheck(CheckMissingUser, errs.Reference(string(models.KindUser), userCognitoID))
	}
	return nil
}

// optionalAdmin and optionalUser validate a reference only when supplied.
func (l *LoaderService) optionalAdmin(ctx context.Context, s repositories.Store, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	return l.requireAdmin(ctx, s, *id)
}

func (l *LoaderService) optionalUser(ctx context.Context, s repositories.Store, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	return l.requireUser(ctx, s, *id)
}

// lookupStock resolves a stock by lot number, tagging a miss as missing_stock.
func lookupStock(ctx context.Context, s repositories.Store, lotNo string) (*models.Stock, error) {
	if lotNo == "" {
		return nil, errs.Validation("lotNo", "", "required")
	}
	stock, err := s.GetStockByLotNo(ctx, lotNo)
	if errs.Is(err, errs.KindNotFound) {
		return nil, failCheck(CheckMissingStock, errs.Reference(string(models.KindStocks), lotNo))
	}
	return stock, err
}

func lookupShipment(ctx context.Context, s repositories.Store, shipmark string) (*models.Shipment, error) {
	if shipmark == "" {
		return nil, errs.Validation("shipmark", "", "required")
	}
	shipment, err := s.GetShipmentByShipmark(ctx, shipmark)
	if errs.Is(err, errs.KindNotFound) {
		return nil, failCheck(CheckMissingShipment, errs.Reference(string(models.KindShipment), shipmark))
	}
	return shipment, err
}

// checkDraw enforces 0 < weight <= stock weight for anything drawn from a
// stock. Overflow is rejected, never clamped.
func checkDraw(field string, weight float64, stock *models.Stock) error {
	if err := validation.Positive(field, weight); err != nil {
		return failCheck(CheckInvalidWeight, err)
	}
	if weight > stock.Weight {
		return failCheck(CheckExceedsStock, errs.Validation(field, weight,
			fmt.Sprintf("exceeds available weight %s of lot %s", FormatWeight(stock.Weight), stock.LotNo)))
	}
	return nil
}

func (l *LoaderService) rawHandler(kind models.EntityKind) handlerFunc {
	return func(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
		return s.InsertRaw(ctx, string(kind), raw)
	}
}

func (l *LoaderService) loadAdmin(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var a models.Admin
	if err := decode(raw, &a); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&a); err != nil {
		return err
	}
	now := l.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	return s.UpsertAdmin(ctx, &a)
}

func (l *LoaderService) loadUser(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var u models.User
	if err := decode(raw, &u); err != nil {
		return err
	}
	u.ID = nil
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if err := validation.ValidateStruct(&u); err != nil {
		return err
	}

	taken, err := s.UserExists(ctx, u.UserCognitoID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if taken {
		return failCheck(CheckDuplicateKey, errs.Duplicate(string(models.KindUser), "userCognitoId", u.UserCognitoID))
	}

	now := l.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	return s.CreateUser(ctx, &u)
}

// checkLot runs the checks shared by every lot listing: field validation, the
// owning admin, then lot number uniqueness within kind.
func (l *LoaderService) checkLot(ctx context.Context, s repositories.Store, kind models.EntityKind, rec any, adminCognitoID, lotNo string) error {
	if err := validation.ValidateStruct(rec); err != nil {
		return err
	}
	if err := l.requireAdmin(ctx, s, adminCognitoID); err != nil {
		return err
	}
	taken, err := s.LotExists(ctx, kind, lotNo)
	if err != nil {
		return fmt.Errorf("failed to check lot number: %w", err)
	}
	if taken {
		return failCheck(CheckDuplicateKey, errs.Duplicate(string(kind), "lotNo", lotNo))
	}
	return nil
}

func (l *LoaderService) loadCatalog(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var c models.Catalog
	if err := decode(raw, &c); err != nil {
		return err
	}
	if err := l.checkLot(ctx, s, models.KindCatalog, &c, c.AdminCognitoID, c.LotNo); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = l.Now()
	}
	return s.CreateCatalog(ctx, &c)
}

func (l *LoaderService) loadSellingPrice(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var p models.SellingPrice
	if err := decode(raw, &p); err != nil {
		return err
	}
	if err := l.checkLot(ctx, s, models.KindSellingPrice, &p, p.AdminCognitoID, p.LotNo); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = l.Now()
	}
	return s.CreateSellingPrice(ctx, &p)
}

func (l *LoaderService) loadOutLot(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var o models.OutLot
	if err := decode(raw, &o); err != nil {
		return err
	}
	if err := l.checkLot(ctx, s, models.KindOutLots, &o, o.AdminCognitoID, o.LotNo); err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = l.Now()
	}
	return s.CreateOutLot(ctx, &o)
}

func (l *LoaderService) loadStock(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var st models.Stock
	if err := decode(raw, &st); err != nil {
		return err
	}
	if err := l.checkLot(ctx, s, models.KindStocks, &st, st.AdminCognitoID, st.LotNo); err != nil {
		return err
	}
	now := l.Now()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = now
	}
	return s.CreateStock(ctx, &st)
}

func (l *LoaderService) loadStockAssignment(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var rec models.StockAssignmentRecord
	if err := decode(raw, &rec); err != nil {
		return err
	}

	stock, err := lookupStock(ctx, s, rec.LotNo)
	if err != nil {
		return err
	}
	if err := l.requireUser(ctx, s, rec.UserCognitoID); err != nil {
		return err
	}
	if err := checkDraw("assignedWeight", rec.AssignedWeight, stock); err != nil {
		return err
	}

	assigned, err := s.AssignmentExists(ctx, stock.ID, rec.UserCognitoID)
	if err != nil {
		return fmt.Errorf("failed to check stock assignment: %w", err)
	}
	if assigned {
		return failCheck(CheckDuplicatePair, errs.Duplicate(string(models.KindStockAssignment), "userCognitoId", rec.UserCognitoID))
	}

	assignment := &models.StockAssignment{
		StockID:        stock.ID,
		UserCognitoID:  rec.UserCognitoID,
		AssignedWeight: rec.AssignedWeight,
		AssignedAt:     timeutil.OrNow(rec.AssignedAt, l.Now),
	}
	if err := s.CreateAssignment(ctx, assignment); err != nil {
		return err
	}

	weight := FormatWeight(rec.AssignedWeight)
	adj, err := l.Ledger.Adjust(ctx, s, AdjustRequest{
		LotNo:  stock.LotNo,
		Change: -rec.AssignedWeight,
		Reason: fmt.Sprintf("Assigned %s kg to user %s", weight, rec.UserCognitoID),
		Actor: Actor{
			UserCognitoID:  &rec.UserCognitoID,
			AdminCognitoID: &stock.AdminCognitoID,
		},
		OperationID: fmt.Sprintf("assignment:%d:%s", stock.ID, rec.UserCognitoID),
	})
	if err != nil {
		return err
	}

	details, err := json.Marshal(map[string]any{
		"lotNo":           stock.LotNo,
		"userCognitoId":   rec.UserCognitoID,
		"assignedWeight":  rec.AssignedWeight,
		"remainingWeight": adj.NewWeight,
	})
	if err != nil {
		return err
	}
	return s.CreateAdminNotification(ctx, &models.AdminNotification{
		AdminCognitoID: stock.AdminCognitoID,
		Message:        fmt.Sprintf("Stock %s: %s kg assigned to user %s", stock.LotNo, weight, rec.UserCognitoID),
		Details:        details,
		CreatedAt:      l.Now(),
	})
}

func (l *LoaderService) loadShipment(ctx context.Context, s repositories.Store, raw json.RawMessage, report models.BatchReport) error {
	var rec models.ShipmentRecord
	if err := decode(raw, &rec); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&rec); err != nil {
		return err
	}
	if err := l.requireUser(ctx, s, rec.UserCognitoID); err != nil {
		return err
	}
	if err := l.optionalAdmin(ctx, s, rec.AdminCognitoID); err != nil {
		return err
	}

	taken, err := s.ShipmentExists(ctx, rec.Shipmark)
	if err != nil {
		return fmt.Errorf("failed to check shipmark: %w", err)
	}
	if taken {
		return failCheck(CheckDuplicateKey, errs.Duplicate(string(models.KindShipment), "shipmark", rec.Shipmark))
	}

	shipment := &models.Shipment{
		Shipmark:       rec.Shipmark,
		Status:         rec.Status,
		Vessel:         rec.Vessel,
		Packaging:      rec.Packaging,
		Consignee:      rec.Consignee,
		UserCognitoID:  rec.UserCognitoID,
		AdminCognitoID: rec.AdminCognitoID,
		ShipmentDate:   timeutil.OrNow(rec.ShipmentDate, l.Now),
		CreatedAt:      l.Now(),
	}
	if err := s.CreateShipment(ctx, shipment); err != nil {
		return err
	}

	// Items are counted on their own; a bad item never undoes the header.
	for i, item := range rec.Items {
		err := s.Savepoint(ctx, func(sp repositories.Store) error {
			return l.addShipmentItem(ctx, sp, shipment, item)
		})
		if err == nil {
			report.Stats(models.KindShipmentItem).Success++
			metrics.RecordsTotal.WithLabelValues(string(models.KindShipmentItem), metrics.OutcomeSuccess).Inc()
			continue
		}
		if errs.Is(err, errs.KindInfrastructure) {
			return err
		}
		l.reject(report, models.KindShipmentItem, i+1, fmt.Errorf("shipment %s: %w", rec.Shipmark, err))
	}
	return nil
}

func (l *LoaderService) loadShipmentItem(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var rec models.ShipmentItemRecord
	if err := decode(raw, &rec); err != nil {
		return err
	}
	shipment, err := lookupShipment(ctx, s, rec.Shipmark)
	if err != nil {
		return err
	}
	return l.addShipmentItem(ctx, s, shipment, rec)
}

// addShipmentItem draws one line item from its stock into shipment.
func (l *LoaderService) addShipmentItem(ctx context.Context, s repositories.Store, shipment *models.Shipment, rec models.ShipmentItemRecord) error {
	stock, err := lookupStock(ctx, s, rec.LotNo)
	if err != nil {
		return err
	}
	if err := checkDraw("assignedWeight", rec.AssignedWeight, stock); err != nil {
		return err
	}

	present, err := s.ShipmentItemExists(ctx, shipment.ID, stock.ID)
	if err != nil {
		return fmt.Errorf("failed to check shipment item: %w", err)
	}
	if present {
		return failCheck(CheckDuplicatePair, errs.Duplicate(string(models.KindShipmentItem), "lotNo", rec.LotNo))
	}

	item := &models.ShipmentItem{
		ShipmentID:     shipment.ID,
		StockID:        stock.ID,
		AssignedWeight: rec.AssignedWeight,
	}
	if err := s.CreateShipmentItem(ctx, item); err != nil {
		return err
	}

	shipmentID := shipment.ID
	_, err = l.Ledger.Adjust(ctx, s, AdjustRequest{
		LotNo:  stock.LotNo,
		Change: -rec.AssignedWeight,
		Reason: fmt.Sprintf("Shipped %s kg in shipment %s", FormatWeight(rec.AssignedWeight), shipment.Shipmark),
		Actor: Actor{
			UserCognitoID:  &shipment.UserCognitoID,
			AdminCognitoID: shipment.AdminCognitoID,
		},
		ShipmentID:  &shipmentID,
		OperationID: fmt.Sprintf("shipment-item:%d:%d", shipment.ID, stock.ID),
	})
	return err
}

func (l *LoaderService) loadStockHistory(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var rec models.StockHistoryRecord
	if err := decode(raw, &rec); err != nil {
		return err
	}
	stock, err := lookupStock(ctx, s, rec.LotNo)
	if err != nil {
		return err
	}
	if err := l.optionalUser(ctx, s, rec.UserCognitoID); err != nil {
		return err
	}
	if err := l.optionalAdmin(ctx, s, rec.AdminCognitoID); err != nil {
		return err
	}

	action := rec.Action
	if action == "" {
		action = models.DefaultStockAction
	}
	return s.CreateStockHistory(ctx, &models.StockHistory{
		StockID:        stock.ID,
		Action:         action,
		UserCognitoID:  rec.UserCognitoID,
		AdminCognitoID: rec.AdminCognitoID,
		Details:        rec.Details,
		Timestamp:      timeutil.OrNow(rec.Timestamp, l.Now),
	})
}

func (l *LoaderService) loadShipmentHistory(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var rec models.ShipmentHistoryRecord
	if err := decode(raw, &rec); err != nil {
		return err
	}
	shipment, err := lookupShipment(ctx, s, rec.Shipmark)
	if err != nil {
		return err
	}
	if err := l.optionalUser(ctx, s, rec.UserCognitoID); err != nil {
		return err
	}
	if err := l.optionalAdmin(ctx, s, rec.AdminCognitoID); err != nil {
		return err
	}

	action := rec.Action
	if action == "" {
		action = models.DefaultShipmentAction
	}
	return s.CreateShipmentHistory(ctx, &models.ShipmentHistory{
		ShipmentID:     shipment.ID,
		Action:         action,
		UserCognitoID:  rec.UserCognitoID,
		AdminCognitoID: rec.AdminCognitoID,
		Details:        rec.Details,
		Timestamp:      timeutil.OrNow(rec.Timestamp, l.Now),
	})
}

func (l *LoaderService) loadAdminNotification(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var n models.AdminNotification
	if err := decode(raw, &n); err != nil {
		return err
	}
	if n.AdminCognitoID == "" {
		return errs.Validation("adminCognitoId", "", "required")
	}
	if strings.TrimSpace(n.Message) == "" {
		return errs.Validation("message", n.Message, "required")
	}
	if !isJSONObject(n.Details) {
		return errs.Validation("details", string(n.Details), "must be an object")
	}
	if err := l.requireAdmin(ctx, s, n.AdminCognitoID); err != nil {
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = l.Now()
	}
	return s.CreateAdminNotification(ctx, &n)
}

func isJSONObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &obj) == nil
}

func (l *LoaderService) loadContact(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var c models.Contact
	if err := decode(raw, &c); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c); err != nil {
		return err
	}
	if err := l.optionalUser(ctx, s, c.UserCognitoID); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = l.Now()
	}
	return s.CreateContact(ctx, &c)
}

func (l *LoaderService) loadFavorite(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var rec models.FavoriteRecord
	if err := decode(raw, &rec); err != nil {
		return err
	}
	if err := l.requireUser(ctx, s, rec.UserCognitoID); err != nil {
		return err
	}

	var stockID *int64
	if rec.LotNo != nil && *rec.LotNo != "" {
		stock, err := s.GetStockByLotNo(ctx, *rec.LotNo)
		if errs.Is(err, errs.KindNotFound) {
			return errs.Reference(string(models.KindStocks), *rec.LotNo)
		}
		if err != nil {
			return err
		}
		stockID = &stock.ID
	}

	present, err := s.FavoriteExists(ctx, rec.UserCognitoID, stockID)
	if err != nil {
		return fmt.Errorf("failed to check favorite: %w", err)
	}
	if present {
		return failCheck(CheckDuplicatePair, errs.Duplicate(string(models.KindFavorite), "userCognitoId", rec.UserCognitoID))
	}

	return s.CreateFavorite(ctx, &models.Favorite{
		UserCognitoID: rec.UserCognitoID,
		StockID:       stockID,
		CreatedAt:     l.Now(),
	})
}

func (l *LoaderService) loadReport(ctx context.Context, s repositories.Store, raw json.RawMessage, _ models.BatchReport) error {
	var r models.Report
	if err := decode(raw, &r); err != nil {
		return err
	}
	r.FileType = strings.ToLower(strings.TrimPrefix(r.FileType, "."))
	if err := validation.ValidateStruct(&r); err != nil {
		return err
	}
	if err := l.requireAdmin(ctx, s, r.AdminCognitoID); err != nil {
		return err
	}
	if err := l.optionalUser(ctx, s, r.UserCognitoID); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = l.Now()
	}
	return s.CreateReport(ctx, &r)
}
