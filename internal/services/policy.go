package services

import (
	"fmt"

	"tea-backend/internal/models"
)

// CheckKind names one precondition the loader verifies before writing.
type CheckKind string

const (
	CheckMissingStock    CheckKind = "missing_stock"
	CheckMissingUser     CheckKind = "missing_user"
	CheckMissingAdmin    CheckKind = "missing_admin"
	CheckMissingShipment CheckKind = "missing_shipment"
	CheckDuplicateKey    CheckKind = "duplicate_key"
	CheckDuplicatePair   CheckKind = "duplicate_pair"
	CheckInvalidWeight   CheckKind = "invalid_weight"
	CheckExceedsStock    CheckKind = "exceeds_stock"
	// CheckInvalidRecord covers malformed records and failed field
	// validation.
	CheckInvalidRecord CheckKind = "invalid_record"
)

// Policy decides what a failed check does to a record. Both policies skip
// the record; Fail also reports an error message for it.
type Policy int

const (
	PolicyFail Policy = iota
	PolicySkip
)

func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "fail"
}

// PolicyTable maps entity kind and check to a policy. Anything not listed
// fails.
type PolicyTable map[models.EntityKind]map[CheckKind]Policy

// DefaultPolicies marks the soft references of partial test data as skips:
// assignments and items pointing at absent stock, history rows for absent
// owners and repeated pairs.
var DefaultPolicies = PolicyTable{
	models.KindStockAssignment: {
		CheckMissingStock:  PolicySkip,
		CheckDuplicatePair: PolicySkip,
	},
	models.KindShipmentItem: {
		CheckMissingStock:    PolicySkip,
		CheckMissingShipment: PolicySkip,
		CheckInvalidWeight:   PolicySkip,
		CheckExceedsStock:    PolicySkip,
		CheckDuplicatePair:   PolicySkip,
	},
	models.KindStockHistory: {
		CheckMissingStock: PolicySkip,
	},
	models.KindShipmentHistory: {
		CheckMissingShipment: PolicySkip,
	},
	models.KindFavorite: {
		CheckDuplicatePair: PolicySkip,
	},
}

func (t PolicyTable) For(kind models.EntityKind, check CheckKind) Policy {
	if checks, ok := t[kind]; ok {
		if p, ok := checks[check]; ok {
			return p
		}
	}
	return PolicyFail
}

// checkError is a failed precondition tagged with the check that caught it.
type checkError struct {
	check CheckKind
	err   error
}

func (e *checkError) Error() string {
	return fmt.Sprintf("%s: %v", e.check, e.err)
}

func (e *checkError) Unwrap() error {
	return e.err
}

func failCheck(check CheckKind, err error) error {
	return &checkError{check: check, err: err}
}
