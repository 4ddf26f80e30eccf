package main

import (
	"context"
	"errors"

	"tea-backend/internal/errs"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// classify attaches the exit code for an error coming out of a run.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindDuplicate, errs.KindReference:
		return withCode(exitValidation, err)
	case errs.KindInfrastructure:
		return withCode(exitDB, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return withCode(exitDB, err)
	}
	return err
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitFailure
}
