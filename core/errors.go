package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput             = "ADMIN_BAD_INPUT"
	ErrorUnknownMessageType   = "ADMIN_UNKNOWN_MESSAGE_TYPE"
	ErrorDuplicateMessageType = "ADMIN_DUPLICATE_MESSAGE_TYPE"
	ErrorUnauthorized         = "ADMIN_UNAUTHORIZED"
	ErrorNotFound             = "ADMIN_NOT_FOUND"
	ErrorNotReady             = "ADMIN_NOT_READY"
	ErrorCollaboratorFailed   = "ADMIN_COLLABORATOR_FAILED"
	ErrorInternal             = "ADMIN_INTERNAL_ERROR"
)

var (
	ErrConnectionNotFound = errors.New("core: connection not found")
	ErrInvitationNotFound = errors.New("core: invitation not found")
	ErrRecordNotFound     = errors.New("core: record not found")
)

func NewError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return goerrors.New(message, category).
		WithCode(HTTPStatus(category)).
		WithTextCode(textCode)
}

func WrapError(source error, category goerrors.Category, message string, textCode string) *goerrors.Error {
	if source == nil {
		return NewError(message, category, textCode)
	}
	// Wrap clones rich sources and keeps their category.
	wrapped := goerrors.Wrap(source, category, message)
	wrapped.Category = category
	return wrapped.
		WithCode(HTTPStatus(category)).
		WithTextCode(textCode)
}

func ValidationError(message string, fields ...goerrors.FieldError) *goerrors.Error {
	return goerrors.NewValidation(message, fields...).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

// NotFoundError tags err as a not-found condition while keeping errors.Is
// compatibility with sentinel.
func NotFoundError(sentinel error, message string) *goerrors.Error {
	return WrapError(sentinel, goerrors.CategoryNotFound, message, ErrorNotFound)
}

// CollaboratorError marks a failure raised by an external manager or store.
func CollaboratorError(source error, message string) error {
	if source == nil {
		return nil
	}
	return WrapError(source, goerrors.CategoryOperation, message, ErrorCollaboratorFailed)
}

// IsNotFound reports whether err is a not-found condition raised by a store.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectionNotFound) || errors.Is(err, ErrInvitationNotFound) || errors.Is(err, ErrRecordNotFound) {
		return true
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryNotFound
	}
	return false
}

// MapError converts any error into a go-errors envelope with a text code.
func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureEnvelope(rich)
	}
	if IsNotFound(err) {
		return NewError(err.Error(), goerrors.CategoryNotFound, ErrorNotFound)
	}
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureEnvelope(mapped)
}

func ensureEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = HTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryNotFound:
		return ErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorUnauthorized
	case goerrors.CategoryConflict:
		return ErrorDuplicateMessageType
	case goerrors.CategoryOperation, goerrors.CategoryExternal:
		return ErrorCollaboratorFailed
	default:
		return ErrorInternal
	}
}

func HTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryOperation, goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
