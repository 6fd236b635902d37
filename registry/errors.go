package registry

import (
	"errors"

	"github.com/goliatone/go-admin-toolbox/core"
	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrDuplicateMessageType = errors.New("registry: duplicate message type")
	ErrUnknownMessageType   = errors.New("registry: unknown message type")
	ErrSealed               = errors.New("registry: catalogue is sealed")
)

func registryError(
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

func duplicateTypeError(msgType string, protocolURI string) error {
	return registryError(
		ErrDuplicateMessageType,
		goerrors.CategoryConflict,
		"registry: message type already registered: "+msgType,
		core.ErrorDuplicateMessageType,
		map[string]any{"message_type": msgType, "protocol": protocolURI},
	)
}

func unknownTypeError(msgType string) error {
	return registryError(
		ErrUnknownMessageType,
		goerrors.CategoryNotFound,
		"registry: no handler registered for message type: "+msgType,
		core.ErrorUnknownMessageType,
		map[string]any{"message_type": msgType},
	)
}

func registryBadInput(message string, metadata map[string]any) error {
	return registryError(nil, goerrors.CategoryBadInput, message, core.ErrorBadInput, metadata)
}

func sealedError() error {
	return registryError(ErrSealed, goerrors.CategoryInternal, "registry: builder already sealed", core.ErrorInternal, nil)
}

// IsDuplicateMessageType reports whether err came from a duplicate registration.
func IsDuplicateMessageType(err error) bool {
	return errors.Is(err, ErrDuplicateMessageType) || hasTextCode(err, core.ErrorDuplicateMessageType)
}

// IsUnknownMessageType reports whether err came from resolving an unregistered type.
func IsUnknownMessageType(err error) bool {
	return errors.Is(err, ErrUnknownMessageType) || hasTextCode(err, core.ErrorUnknownMessageType)
}

func hasTextCode(err error, textCode string) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode == textCode
	}
	return false
}
