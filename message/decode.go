package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-admin-toolbox/core"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Defaulter is implemented by messages that fill absent optional fields.
type Defaulter interface {
	ApplyDefaults()
}

type Validatable interface {
	Validate() error
}

// PeekType extracts the `@type` of a raw envelope without decoding the body.
func PeekType(raw []byte) (string, error) {
	var envelope struct {
		MsgType string `json:"@type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", core.ValidationError("message: envelope is not valid json", goerrors.FieldError{
			Field:   "@type",
			Message: err.Error(),
		})
	}
	msgType := strings.TrimSpace(envelope.MsgType)
	if msgType == "" {
		return "", core.ValidationError("message: envelope type is required", goerrors.FieldError{
			Field:   "@type",
			Message: "cannot be blank",
		})
	}
	return msgType, nil
}

// Decode parses raw into T, applies declared defaults and validates the
// result. All field violations are reported together.
func Decode[T Message](raw []byte) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, core.ValidationError("message: decode failed", goerrors.FieldError{
			Field:   fieldFromJSONError(err),
			Message: err.Error(),
		})
	}
	expected := out.Type()
	if got := strings.TrimSpace(out.Envelope().MsgType); got != expected {
		return out, core.ValidationError("message: type mismatch", goerrors.FieldError{
			Field:   "@type",
			Message: fmt.Sprintf("expected %q, got %q", expected, got),
		})
	}
	if assigner, ok := any(&out).(idAssigner); ok {
		assigner.ensureID()
	}
	if defaulter, ok := any(&out).(Defaulter); ok {
		defaulter.ApplyDefaults()
	}
	if v, ok := any(out).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return out, err
		}
	}
	return out, nil
}

type idAssigner interface {
	ensureID()
}

// Check converts ozzo validation output into a go-errors validation
// envelope. Nested errors are flattened as parent.child.
func Check(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return core.WrapError(err, goerrors.CategoryInternal, "message: validation failed", core.ErrorInternal)
	}
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return nil
	}
	return core.ValidationError("message: validation failed", fields...)
}

// FieldErrors flattens an ozzo error tree into sorted field errors.
func FieldErrors(err error) []goerrors.FieldError {
	out := []goerrors.FieldError{}
	flattenValidation("", err, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func flattenValidation(prefix string, err error, out *[]goerrors.FieldError) {
	if err == nil {
		return
	}
	var nested validation.Errors
	if errors.As(err, &nested) {
		for key, child := range nested {
			flattenValidation(joinField(prefix, key), child, out)
		}
		return
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		if list := rich.AllValidationErrors(); len(list) > 0 {
			for _, fe := range list {
				*out = append(*out, goerrors.FieldError{Field: joinField(prefix, fe.Field), Message: fe.Message})
			}
			return
		}
	}
	*out = append(*out, goerrors.FieldError{Field: prefix, Message: err.Error()})
}

func joinField(prefix string, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func fieldFromJSONError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return "@type"
}

// IsUUID is an ozzo rule accepting canonical UUID strings.
var IsUUID = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
})

// IsISO8601 is an ozzo rule accepting record timestamps.
var IsISO8601 = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, layout := range iso8601Layouts {
		if err := validation.Validate(s, validation.Date(layout)); err == nil {
			return nil
		}
	}
	return errors.New("must be an ISO-8601 datetime")
})

var iso8601Layouts = []string{
	core.TimestampLayout,
	"2006-01-02 15:04:05Z",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999Z07:00",
}
