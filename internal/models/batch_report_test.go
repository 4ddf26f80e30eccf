package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchReport_Merge(t *testing.T) {
	a := NewBatchReport()
	a.Stats(KindStocks).Success = 2
	a.Stats(KindStocks).Skipped = 1
	a.Stats(KindStocks).Errors = append(a.Stats(KindStocks).Errors, "dup")

	b := NewBatchReport()
	b.Stats(KindStocks).Success = 1
	b.Stats(KindUser).Skipped = 3

	a.Merge(b)

	require.Equal(t, 3, a[KindStocks].Success)
	require.Equal(t, 1, a[KindStocks].Skipped)
	require.Equal(t, []string{"dup"}, a[KindStocks].Errors)
	require.Equal(t, 3, a[KindUser].Skipped)

	success, skipped, errs := a.Totals()
	assert.Equal(t, 3, success)
	assert.Equal(t, 4, skipped)
	assert.Equal(t, 1, errs)
}

func TestBatchReport_KindsOrder(t *testing.T) {
	r := NewBatchReport()
	r.Stats("zeta")
	r.Stats(KindReport)
	r.Stats(KindAdmin)
	r.Stats("alpha")

	assert.Equal(t, []EntityKind{KindAdmin, KindReport, "alpha", "zeta"}, r.Kinds())
}

func TestEntityKind_FileAndTable(t *testing.T) {
	assert.Equal(t, "sellingPrice", KindSellingPrice.FileName())
	assert.Equal(t, "selling_prices", KindSellingPrice.Table())
	assert.Equal(t, "custom", EntityKind("custom").FileName())
	assert.False(t, EntityKind("custom").Known())
}
