// Package errs defines the seeder's error taxonomy. Validation, reference and
// duplicate errors are per-record and never abort a batch; infrastructure
// errors propagate to the top of the run.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindReference
	KindDuplicate
	KindNegativeBalance
	KindNotFound
	KindInfrastructure
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindValidation:      "validation",
	KindReference:       "reference",
	KindDuplicate:       "duplicate",
	KindNegativeBalance: "negative_balance",
	KindNotFound:        "not_found",
	KindInfrastructure:  "infrastructure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified seeder error.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	Value  any
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s=%v", msg, e.Field, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a field whose value is outside its allowed domain.
func Validation(field string, value any, reason string) *Error {
	return &Error{Kind: KindValidation, Field: field, Value: value, Msg: "invalid value (" + reason + ")"}
}

// Reference reports a missing related entity.
func Reference(entity, key string) *Error {
	return &Error{Kind: KindReference, Entity: entity, Msg: fmt.Sprintf("%s %q does not exist", entity, key)}
}

// Duplicate reports a unique-key collision.
func Duplicate(entity, field string, value any) *Error {
	return &Error{Kind: KindDuplicate, Entity: entity, Msg: fmt.Sprintf("duplicate %s", entity), Field: field, Value: value}
}

// NegativeBalance reports an adjustment that would take a stock below zero.
func NegativeBalance(lotNo string, current, change float64) *Error {
	return &Error{
		Kind:   KindNegativeBalance,
		Entity: "Stock",
		Msg:    fmt.Sprintf("adjustment %v on lot %s would leave %v", change, lotNo, current+change),
	}
}

// NotFound reports a lookup that matched no row.
func NotFound(entity, key string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Msg: fmt.Sprintf("%s %q not found", entity, key)}
}

// Infrastructure wraps a storage or driver failure.
func Infrastructure(msg string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
