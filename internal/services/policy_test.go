package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tea-backend/internal/models"
)

func TestDefaultPolicies(t *testing.T) {
	tests := []struct {
		kind  models.EntityKind
		check CheckKind
		want  Policy
	}{
		{models.KindStockAssignment, CheckMissingStock, PolicySkip},
		{models.KindStockAssignment, CheckMissingUser, PolicyFail},
		{models.KindStockAssignment, CheckExceedsStock, PolicyFail},
		{models.KindStockAssignment, CheckDuplicatePair, PolicySkip},
		{models.KindShipmentItem, CheckMissingStock, PolicySkip},
		{models.KindShipmentItem, CheckExceedsStock, PolicySkip},
		{models.KindShipmentItem, CheckMissingShipment, PolicySkip},
		{models.KindStockHistory, CheckMissingStock, PolicySkip},
		{models.KindStockHistory, CheckMissingUser, PolicyFail},
		{models.KindShipmentHistory, CheckMissingShipment, PolicySkip},
		{models.KindCatalog, CheckDuplicateKey, PolicyFail},
		{models.KindFavorite, CheckDuplicatePair, PolicySkip},
		{models.KindFavorite, CheckMissingUser, PolicyFail},
		{"Unknown", CheckInvalidRecord, PolicyFail},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.check), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultPolicies.For(tt.kind, tt.check))
		})
	}
}

func TestCheckError_Unwraps(t *testing.T) {
	cause := errors.New("cause")
	err := failCheck(CheckMissingUser, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "missing_user: cause", err.Error())

	var ce *checkError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, CheckMissingUser, ce.check)
}
