package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskboard/pkg/apierrors"
)

// ErrMalformedPayload means the body is not a JSON object at all.
var ErrMalformedPayload = errors.New("malformed payload")

// BodyField collects errors that concern the payload as a whole.
const BodyField = "body"

// Errors maps JSON field names to the rules they failed.
type Errors map[string][]apierrors.FieldViolation

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

func (e Errors) add(field, messageID, param string) {
	e[field] = append(e[field], apierrors.FieldViolation{MessageID: messageID, Param: param})
}

func (e Errors) has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var ruleMessages = map[string]string{
	"required": apierrors.MsgFieldRequired,
	"max":      apierrors.MsgFieldMax,
	"min":      apierrors.MsgFieldMin,
	"email":    apierrors.MsgFieldEmail,
	"oneof":    apierrors.MsgFieldIn,
	"datetime": apierrors.MsgFieldDate,
}

// checkStruct runs the struct tags and records every failure.
func checkStruct(req interface{}, errs Errors) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	for _, fe := range fieldErrs {
		messageID, ok := ruleMessages[fe.Tag()]
		if !ok {
			messageID = apierrors.MsgFieldInvalid
		}
		errs.add(fe.Field(), messageID, fe.Param())
	}
	return nil
}

// DecodeJSON decodes body into dst and returns the raw object so callers can tell
// an explicit null from an absent field. A body that is not a JSON object yields
// ErrMalformedPayload; fields of the wrong type yield Errors.
func DecodeJSON(body []byte, dst interface{}) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, ErrMalformedPayload
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			errs := Errors{}
			errs.add(typeErr.Field, apierrors.MsgFieldType, "")
			return raw, errs
		}
		return nil, ErrMalformedPayload
	}

	return raw, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return strings.TrimSpace(string(value)) == "null"
}
