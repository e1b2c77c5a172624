package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so board operations can be
// told apart in logs without string matching.
const (
	codeCommandInvalid   = "DASHBOARD_COMMAND_INVALID"
	codeCommandCancelled = "DASHBOARD_COMMAND_CANCELLED"
	codeCommandTimeout   = "DASHBOARD_COMMAND_TIMEOUT"
	codeCommandContext   = "DASHBOARD_COMMAND_CONTEXT"
	codeCommandFailed    = "DASHBOARD_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "widget command rejected by validation").
		WithTextCode(codeCommandInvalid)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "widget command cancelled").
			WithTextCode(codeCommandCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "widget command deadline exceeded").
			WithTextCode(codeCommandTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "widget command context error").
			WithTextCode(codeCommandContext)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "widget command failed").
		WithTextCode(codeCommandFailed)
}
