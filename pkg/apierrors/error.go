package apierrors

import (
	"fmt"
	"sort"

	"taskboard/pkg/translator"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code, a message and optional per-field messages.
type Err struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// FieldViolation is one failed rule on one request field.
type FieldViolation struct {
	MessageID string
	Param     string
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

// CreateValidationError translates every field violation. Fields are the JSON
// names of the request.
func CreateValidationError(code int, lang string, violations map[string][]FieldViolation) JsonErr {
	fields := make([]string, 0, len(violations))
	for field := range violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errs := make(map[string][]string, len(violations))
	for _, field := range fields {
		for _, v := range violations[field] {
			msg := translator.Localize(lang, v.MessageID, map[string]interface{}{
				"Field": field,
				"Param": v.Param,
			})
			errs[field] = append(errs[field], msg)
		}
	}

	return JsonErr{ErrDetails: Err{
		Code:    code,
		Message: GetTransErrorMsg(MsgValidationFailed, lang),
		Errors:  errs,
	}}
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translator.Localize(lang, msgKey, nil)
}
