package dispatch

import (
	"errors"

	"github.com/goliatone/go-admin-toolbox/core"
	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrUnauthorized = errors.New("dispatch: caller lacks required capability")

	// errDropped short-circuits a request that must receive no reply.
	errDropped = errors.New("dispatch: request dropped")
)

func dispatchError(
	source error,
	category goerrors.Category,
	message string,
	textCode string,
	metadata map[string]any,
) error {
	err := core.WrapError(source, category, message, textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func dispatchInternal(message string, metadata map[string]any) error {
	return dispatchError(nil, goerrors.CategoryInternal, message, core.ErrorInternal, metadata)
}

func unauthorizedError(msgType string, capability string) error {
	return dispatchError(
		ErrUnauthorized,
		goerrors.CategoryAuthz,
		"dispatch: unauthorized admin request",
		core.ErrorUnauthorized,
		map[string]any{"message_type": msgType, "capability": capability},
	)
}

// handlerError keeps envelopes produced by handlers and wraps anything else
// as a collaborator failure.
func handlerError(err error, msgType string) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return err
	}
	return dispatchError(
		err,
		goerrors.CategoryOperation,
		"dispatch: handler execution failed",
		core.ErrorCollaboratorFailed,
		map[string]any{"message_type": msgType},
	)
}

// IsUnauthorized reports whether err is an authorization gate rejection.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
