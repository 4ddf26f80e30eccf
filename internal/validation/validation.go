// Package validation checks batch records against the closed domain sets
// before anything touches storage.
package validation

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"

	"tea-backend/internal/errs"
)

var (
	Categories = []string{"M1", "M2", "M3", "S1"}

	Grades = []string{
		"BP1", "PF1", "PD", "D1", "BMF", "BP", "PF", "FNGS1", "DUST1",
		"BOP", "BOPF", "PF2", "PD2", "D2", "FNGS2", "DUST2", "BMF1", "PEKOE",
	}

	Brokers = []string{
		"AMBR", "ANJL", "ATBL", "ATLL", "BICL", "CENT",
		"CTBL", "PRME", "TBEA", "UNTB", "VENS", "ZITL",
	}

	ShipmentStatuses = []string{"Pending", "Approved", "Shipped", "Delivered", "Cancelled"}
	Vessels          = []string{"first", "second", "third", "fourth"}
	Packagings       = []string{"oneJutetwoPolly", "oneJuteOnePolly"}
	Reprints         = []string{"1", "2", "3", "4", "5", "6", "7", "No"}
	ReportFileTypes  = []string{"pdf", "xlsx", "xls", "csv", "docx", "doc"}
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	for tag, set := range closedSets {
		_ = v.RegisterValidation(tag, func(fl gpvalidator.FieldLevel) bool {
			return slices.Contains(set, fl.Field().String())
		})
	}
}

// closedSets backs the custom tags used on record structs, e.g.
// validate:"required,grade". A missing reprint is valid through omitempty on
// its pointer field.
var closedSets = map[string][]string{
	"grade":            Grades,
	"broker":           Brokers,
	"reprint":          Reprints,
	"category":         Categories,
	"shipment_status":  ShipmentStatuses,
	"vessel":           Vessels,
	"packaging":        Packagings,
	"report_file_type": ReportFileTypes,
}

// ValidateStruct validates a record and converts the first failing field into
// a validation error carrying the field name and offending value.
func ValidateStruct(s any) error {
	if v == nil {
		Init()
	}
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs gpvalidator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errs.Validation(fe.Field(), fe.Value(), reason(fe))
	}
	return errs.Validation("", nil, err.Error())
}

func reason(fe gpvalidator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "required":
		return "required"
	}
	if set, ok := closedSets[fe.Tag()]; ok {
		return "must be one of " + strings.Join(set, " ")
	}
	return fe.Tag()
}

// Positive is the numeric guard for bags and weights.
func Positive(field string, value float64) error {
	if value <= 0 {
		return errs.Validation(field, value, "must be greater than 0")
	}
	return nil
}
