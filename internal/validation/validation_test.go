package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tea-backend/internal/errs"
	"tea-backend/internal/models"
)

func validCatalog() models.Catalog {
	return models.Catalog{
		LotNo:          "L100",
		Broker:         "AMBR",
		SellingMark:    "KIPCHABO",
		Grade:          "BP1",
		Bags:           20,
		NetWeight:      1000,
		Category:       "M1",
		AdminCognitoID: "A1",
	}
}

func TestClosedSetTags(t *testing.T) {
	assert.Len(t, Grades, 18)

	tests := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"category", "S1", true},
		{"category", "S2", false},
		{"shipment_status", "Delivered", true},
		{"shipment_status", "delivered", false},
		{"vessel", "fourth", true},
		{"vessel", "fifth", false},
		{"packaging", "oneJuteOnePolly", true},
		{"packaging", "twoJute", false},
		{"reprint", "7", true},
		{"reprint", "8", false},
		{"reprint", "No", true},
		{"report_file_type", "csv", true},
		{"report_file_type", "exe", false},
	}
	Init()
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateStruct_ClosedSetReason(t *testing.T) {
	c := validCatalog()
	c.Category = "X9"
	err := ValidateStruct(&c)
	require.Error(t, err)
	assert.ErrorContains(t, err, "must be one of M1 M2 M3 S1")
}

func TestValidateStruct_Catalog(t *testing.T) {
	reprint := func(s string) *string { return &s }

	tests := []struct {
		name      string
		mutate    func(c *models.Catalog)
		wantField string
	}{
		{name: "valid", mutate: func(c *models.Catalog) {}},
		{name: "valid reprint", mutate: func(c *models.Catalog) { c.Reprint = reprint("3") }},
		{name: "bad category", mutate: func(c *models.Catalog) { c.Category = "X9" }, wantField: "category"},
		{name: "bad grade", mutate: func(c *models.Catalog) { c.Grade = "ZZZ" }, wantField: "grade"},
		{name: "bad broker", mutate: func(c *models.Catalog) { c.Broker = "NOPE" }, wantField: "broker"},
		{name: "bad reprint", mutate: func(c *models.Catalog) { c.Reprint = reprint("9") }, wantField: "reprint"},
		{name: "zero bags", mutate: func(c *models.Catalog) { c.Bags = 0 }, wantField: "bags"},
		{name: "negative weight", mutate: func(c *models.Catalog) { c.NetWeight = -1 }, wantField: "netWeight"},
		{name: "missing lot", mutate: func(c *models.Catalog) { c.LotNo = "" }, wantField: "lotNo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCatalog()
			tt.mutate(&c)
			err := ValidateStruct(&c)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errs.Is(err, errs.KindValidation))
			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantField, e.Field)
		})
	}
}

func TestValidateStruct_EmbeddedSellingPrice(t *testing.T) {
	sp := models.SellingPrice{Catalog: validCatalog(), AskingPrice: 3.5}
	require.NoError(t, ValidateStruct(&sp))

	sp.Grade = "bad"
	err := ValidateStruct(&sp)
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "grade", e.Field)
	assert.Equal(t, "bad", e.Value)
}

func TestValidateStruct_Shipment(t *testing.T) {
	rec := models.ShipmentRecord{
		Shipmark:      "SHIP-1",
		Status:        "Pending",
		Vessel:        "first",
		Packaging:     "oneJutetwoPolly",
		UserCognitoID: "U1",
	}
	require.NoError(t, ValidateStruct(&rec))

	rec.Vessel = "fifth"
	err := ValidateStruct(&rec)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "vessel", e.Field)

	rec.Vessel = "first"
	rec.Status = "Lost"
	require.ErrorAs(t, ValidateStruct(&rec), &e)
	assert.Equal(t, "status", e.Field)

	rec.Status = "Shipped"
	rec.Packaging = "crate"
	require.ErrorAs(t, ValidateStruct(&rec), &e)
	assert.Equal(t, "packagingInstructions", e.Field)
}

func TestPositive(t *testing.T) {
	assert.NoError(t, Positive("weight", 0.1))
	assert.True(t, errs.Is(Positive("weight", 0), errs.KindValidation))
	assert.True(t, errs.Is(Positive("weight", -3), errs.KindValidation))
}
