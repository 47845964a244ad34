package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/deppfellow/go-profile/internal/errs"
	"github.com/labstack/echo/v4"
)

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the request struct from the body and params.
// A value of the wrong JSON type becomes a field error instead of failing the bind.
// 2) FormRequest payloads are checked against their RuleSet for userID using v.
// 3) Returns *errs.HTTPError (400) with field-level errors if anything failed.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload any, v *Validator, userID *string) error {
	typeErrors, err := bind(c, payload)
	if err != nil {
		return err
	}

	var ruleErrors CustomValidationErrors
	if p, ok := payload.(FormRequest); ok {
		if v == nil {
			return errors.New("validation: form request bound without a validator")
		}
		if err := v.Validate(c.Request().Context(), p.Rules(userID), p.Values()); err != nil {
			if !errors.As(err, &ruleErrors) {
				return err
			}
		}
	}

	fieldErrors := mergeFieldErrors(typeErrors, ruleErrors)
	if len(fieldErrors) > 0 {
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
	}

	return nil
}

// bind runs c.Bind. encoding/json keeps decoding after a type mismatch, so the
// other fields are still populated and the mismatch is returned as a field error.
// Any other bind failure is returned as a 400 without field errors.
func bind(c echo.Context, payload any) (CustomValidationErrors, error) {
	err := c.Bind(payload)
	if err == nil {
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return CustomValidationErrors{{
			Field:   typeErr.Field,
			Message: typeMismatchMessage(typeErr),
		}}, nil
	}

	return nil, errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
}

func typeMismatchMessage(err *json.UnmarshalTypeError) string {
	if err.Type != nil && err.Type.Kind() == reflect.String {
		return messageFor(err.Field, RuleString, "", reflect.Invalid)
	}
	return messageFor(err.Field, ruleInvalid, "", reflect.Invalid)
}

// mergeFieldErrors reports one error per field, sorted by field. A type
// mismatch replaces the rule error of the same field, since the rules only
// saw the zero value.
func mergeFieldErrors(typeErrors, ruleErrors CustomValidationErrors) []errs.FieldError {
	messages := make(map[string]string, len(typeErrors)+len(ruleErrors))
	for _, e := range ruleErrors {
		messages[e.Field] = e.Message
	}
	for _, e := range typeErrors {
		messages[e.Field] = e.Message
	}

	if len(messages) == 0 {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(messages))
	for field, msg := range messages {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
	}
	sort.Slice(fieldErrors, func(i, j int) bool {
		return fieldErrors[i].Field < fieldErrors[j].Field
	})

	return fieldErrors
}

// bindErrorMessage pulls the client-facing message out of Echo's bind errors.
func bindErrorMessage(err error) string {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) && bindErr.HTTPError != nil {
		if msg, ok := bindErr.Message.(string); ok {
			return msg
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("Malformed JSON at offset %d", syntaxErr.Offset)
	}

	return "Invalid request body"
}

// ruleInvalid is reported when a value has a kind no rule of the field can check.
const ruleInvalid = "invalid"

// messageFor converts a failed rule into a user-friendly message.
func messageFor(field, tag, param string, kind reflect.Kind) string {
	switch tag {
	case RuleRequired:
		return "is required"

	case RuleString:
		return "must be a string"

	case RuleLowercase:
		return "must be lowercase"

	case RuleEmail:
		return "must be a valid email address"

	case RuleUnique:
		return "has already been taken"

	case RuleMax:
		if kind == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", param)
		}
		return fmt.Sprintf("must not exceed %s", param)

	case ruleInvalid:
		return "is invalid"
	}

	if param != "" {
		return fmt.Sprintf("%s: %s:%s", field, tag, param)
	}
	return fmt.Sprintf("%s: %s", field, tag)
}
