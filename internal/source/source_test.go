package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tea-backend/internal/models"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "array", input: `[{"a":1},{"a":2}]`, want: 2},
		{name: "single object", input: ` {"a":1} `, want: 1},
		{name: "empty file", input: "  ", want: 0},
		{name: "empty array", input: `[]`, want: 0},
		{name: "garbage", input: `[{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeXLSX_TypesColumns(t *testing.T) {
	data := workbook(t, [][]any{
		{"lotNo", "weight", "bags", "grade", "lowStockThreshold", "adminCognitoId", "createdAt", "notes"},
		{"L100", "1,000.5", 20, "BP", "", "A1", "2024-03-01", "kept as text"},
		{},
		{"L200", 250, 5, "PD", 10, "A1", "", ""},
	})

	records, err := DecodeXLSX(bytes.NewReader(data), models.KindStocks)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(records[0], &first))
	assert.Equal(t, "L100", first["lotNo"])
	assert.Equal(t, 1000.5, first["weight"])
	assert.Equal(t, float64(20), first["bags"])
	assert.Equal(t, "kept as text", first["notes"])
	assert.NotContains(t, first, "lowStockThreshold")
	assert.Contains(t, first["createdAt"], "2024-03-01T00:00:00")

	var stock models.Stock
	require.NoError(t, json.Unmarshal(records[1], &stock))
	assert.Equal(t, "L200", stock.LotNo)
	assert.Equal(t, 250.0, stock.Weight)
	require.NotNil(t, stock.LowStockThreshold)
	assert.Equal(t, 10.0, *stock.LowStockThreshold)
}

func TestDecodeXLSX_EmbeddedAndNested(t *testing.T) {
	prices := workbook(t, [][]any{
		{"lotNo", "netWeight", "askingPrice"},
		{"L1", 500, "320.5"},
	})
	records, err := DecodeXLSX(bytes.NewReader(prices), models.KindSellingPrice)
	require.NoError(t, err)
	require.Len(t, records, 1)
	var sp models.SellingPrice
	require.NoError(t, json.Unmarshal(records[0], &sp))
	assert.Equal(t, 500.0, sp.NetWeight)
	assert.Equal(t, 320.5, sp.AskingPrice)

	shipments := workbook(t, [][]any{
		{"shipmark", "items"},
		{"SHIP-1", `[{"lotNo":"L1","assignedWeight":10}]`},
	})
	records, err = DecodeXLSX(bytes.NewReader(shipments), models.KindShipment)
	require.NoError(t, err)
	var rec models.ShipmentRecord
	require.NoError(t, json.Unmarshal(records[0], &rec))
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "L1", rec.Items[0].LotNo)
}

func TestDecodeXLSX_UnconvertibleCellKeptAsText(t *testing.T) {
	data := workbook(t, [][]any{
		{"name", "privacyConsent"},
		{"Asha", "maybe"},
		{"Ravi", "yes"},
	})
	records, err := DecodeXLSX(bytes.NewReader(data), models.KindContact)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"name":"Asha","privacyConsent":"maybe"}`, string(records[0]))

	var c models.Contact
	assert.Error(t, json.Unmarshal(records[0], &c))
	require.NoError(t, json.Unmarshal(records[1], &c))
	require.NotNil(t, c.PrivacyConsent)
	assert.True(t, *c.PrivacyConsent)
}

func TestDecodeXLSX_Errors(t *testing.T) {
	_, err := DecodeXLSX(bytes.NewReader([]byte("not a workbook")), models.KindContact)
	assert.Error(t, err)
}

func TestDecodeXLSX_YesNoBooleans(t *testing.T) {
	data := workbook(t, [][]any{
		{"name", "privacyConsent"},
		{"Asha", "yes"},
		{"Ravi", "No"},
	})
	records, err := DecodeXLSX(bytes.NewReader(data), models.KindContact)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var c models.Contact
	require.NoError(t, json.Unmarshal(records[1], &c))
	require.NotNil(t, c.PrivacyConsent)
	assert.False(t, *c.PrivacyConsent)
}

func TestFSSource_Open(t *testing.T) {
	src := &FSSource{
		FS: fstest.MapFS{
			"admin.json":  {Data: []byte(`[{"adminCognitoId":"A1"}]`)},
			"stocks.xlsx": {Data: workbook(t, [][]any{{"lotNo"}, {"L1"}, {"L2"}})},
			"user.json":   {Data: []byte(`{"broken"`)},
		},
		Name: "mem",
	}
	ctx := context.Background()

	records, err := src.Open(ctx, models.KindAdmin)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = src.Open(ctx, models.KindStocks)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = src.Open(ctx, models.KindCatalog)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Open(ctx, models.KindUser)
	assert.ErrorContains(t, err, "user.json")

	assert.Equal(t, "dir:mem", src.Describe())
}

type fakeBucket struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeBucket) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestS3Source_Open(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{
		"seed/favorite.json": `[{"userCognitoId":"U1"},{"userCognitoId":"U2"}]`,
	}}
	src := &S3Source{Client: bucket, Bucket: "tea", Prefix: "seed"}
	ctx := context.Background()

	records, err := src.Open(ctx, models.KindFavorite)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	bucket.keys = nil
	_, err = src.Open(ctx, models.KindReport)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"seed/report.json", "seed/report.xlsx"}, bucket.keys)

	bucket.err = errors.New("access denied")
	_, err = src.Open(ctx, models.KindReport)
	assert.ErrorContains(t, err, "access denied")
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.Equal(t, "s3://tea/seed", src.Describe())
}
