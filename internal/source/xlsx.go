package source

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tea-backend/internal/logger"
	"tea-backend/internal/models"
	"tea-backend/internal/timeutil"
)

// recordTypes gives the record struct each kind decodes into. Columns are
// typed from its json tags.
var recordTypes = map[models.EntityKind]reflect.Type{
	models.KindAdmin:             reflect.TypeOf(models.Admin{}),
	models.KindUser:              reflect.TypeOf(models.User{}),
	models.KindCatalog:           reflect.TypeOf(models.Catalog{}),
	models.KindSellingPrice:      reflect.TypeOf(models.SellingPrice{}),
	models.KindOutLots:           reflect.TypeOf(models.OutLot{}),
	models.KindStocks:            reflect.TypeOf(models.Stock{}),
	models.KindStockAssignment:   reflect.TypeOf(models.StockAssignmentRecord{}),
	models.KindShipment:          reflect.TypeOf(models.ShipmentRecord{}),
	models.KindShipmentItem:      reflect.TypeOf(models.ShipmentItemRecord{}),
	models.KindStockHistory:      reflect.TypeOf(models.StockHistoryRecord{}),
	models.KindShipmentHistory:   reflect.TypeOf(models.ShipmentHistoryRecord{}),
	models.KindAdminNotification: reflect.TypeOf(models.AdminNotification{}),
	models.KindContact:           reflect.TypeOf(models.Contact{}),
	models.KindFavorite:          reflect.TypeOf(models.FavoriteRecord{}),
	models.KindReport:            reflect.TypeOf(models.Report{}),
}

var (
	timeType = reflect.TypeOf(time.Time{})
	rawType  = reflect.TypeOf(json.RawMessage{})
)

// DecodeXLSX reads the first sheet of a workbook. Row one holds the json
// field names; every following non-empty row becomes one record. Empty cells
// are left out so defaults apply.
func DecodeXLSX(r io.Reader, kind models.EntityKind) ([]json.RawMessage, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	fields := fieldTypes(recordTypes[kind])

	var records []json.RawMessage
	for n, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			// An unconvertible cell stays a string so that decoding rejects
			// only its own record.
			v, err := convertCell(cell, fields[header[i]])
			if err != nil {
				logger.Debug("xlsx cell kept as text",
					zap.Int("row", n+2),
					zap.String("column", header[i]),
					zap.Error(err),
				)
				v = cell
			}
			rec[header[i]] = v
		}
		if len(rec) == 0 {
			continue
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, b)
	}
	return records, nil
}

// fieldTypes maps json names to field types, flattening embedded structs.
func fieldTypes(t reflect.Type) map[string]reflect.Type {
	out := map[string]reflect.Type{}
	if t == nil {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			for name, ft := range fieldTypes(f.Type) {
				out[name] = ft
			}
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = f.Type
	}
	return out
}

func convertCell(cell string, t reflect.Type) (any, error) {
	if t == nil {
		return cell, nil
	}
	if t == rawType {
		if json.Valid([]byte(cell)) {
			return json.RawMessage(cell), nil
		}
		return cell, nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		ts, err := timeutil.ParseFlexible(cell)
		if err != nil {
			return nil, err
		}
		return ts.Format(time.RFC3339Nano), nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", cell)
		}
		return f, nil
	case reflect.Bool:
		switch strings.ToLower(cell) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", cell)
		}
		return b, nil
	case reflect.Slice, reflect.Struct, reflect.Map:
		if !json.Valid([]byte(cell)) {
			return nil, fmt.Errorf("not valid JSON: %q", cell)
		}
		return json.RawMessage(cell), nil
	default:
		return cell, nil
	}
}
