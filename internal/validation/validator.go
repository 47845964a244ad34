package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UniqueChecker looks up whether a value is already stored.
//
// Implementations must honour rule.IgnoreID: when it is set, the row whose
// rule.IgnoreColumn equals it is not counted.
type UniqueChecker interface {
	Exists(ctx context.Context, rule UniqueRule, value any) (bool, error)
}

// FormRequest is implemented by request payloads that declare their rules
// per request, usually depending on the authenticated user.
type FormRequest interface {
	// Rules returns the constraints for the submitted fields.
	// userID is nil when the request is not authenticated.
	Rules(userID *string) RuleSet

	// Values returns the submitted values keyed by rule field name.
	Values() map[string]any
}

// staticRules are evaluated as validator tags. validator panics on a tag it
// does not know, so anything else is rejected before reaching it.
var staticRules = map[string]bool{
	RuleString:    true,
	RuleLowercase: true,
	RuleEmail:     true,
	RuleMax:       true,
}

// rules that only make sense on strings; validator panics on some of them otherwise.
var stringOnlyRules = map[string]bool{
	RuleLowercase: true,
	RuleEmail:     true,
}

// sizedKinds are the kinds validator can measure for max.
var sizedKinds = map[reflect.Kind]bool{
	reflect.String:  true,
	reflect.Slice:   true,
	reflect.Map:     true,
	reflect.Array:   true,
	reflect.Int:     true,
	reflect.Int8:    true,
	reflect.Int16:   true,
	reflect.Int32:   true,
	reflect.Int64:   true,
	reflect.Uint:    true,
	reflect.Uint8:   true,
	reflect.Uint16:  true,
	reflect.Uint32:  true,
	reflect.Uint64:  true,
	reflect.Float32: true,
	reflect.Float64: true,
}

// Validator evaluates a RuleSet against submitted values.
//
// Static constraints run through go-playground/validator tags.
// Uniqueness constraints are delegated to a UniqueChecker and only
// queried once every static constraint of the field passed.
type Validator struct {
	validate *validator.Validate
	unique   UniqueChecker
}

// NewValidator builds a Validator. unique may be nil when no rule set in use
// declares uniqueness constraints.
func NewValidator(unique UniqueChecker) *Validator {
	validate := validator.New()

	// "string" is not a builtin validator tag.
	if err := validate.RegisterValidation(RuleString, isString); err != nil {
		panic(fmt.Sprintf("registering %q validation: %v", RuleString, err))
	}

	return &Validator{
		validate: validate,
		unique:   unique,
	}
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

// Validate checks values against rules.
//
// It returns CustomValidationErrors (one entry per failing field, sorted by
// field name) when input is invalid, another error when a check could not be
// performed, and nil otherwise.
func (v *Validator) Validate(ctx context.Context, rules RuleSet, values map[string]any) error {
	var fieldErrors CustomValidationErrors

	for _, field := range rules.Fields() {
		msg, err := v.checkField(ctx, field, rules[field], values[field])
		if err != nil {
			return err
		}
		if msg != "" {
			fieldErrors = append(fieldErrors, CustomValidationError{
				Field:   field,
				Message: msg,
			})
		}
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// checkField returns the message of the first failing constraint, or "".
func (v *Validator) checkField(ctx context.Context, field string, constraints []Constraint, value any) (string, error) {
	if isEmpty(value) {
		if hasRule(constraints, RuleRequired) {
			return messageFor(field, RuleRequired, "", reflect.Invalid), nil
		}
		// Optional and absent: nothing else applies.
		return "", nil
	}

	kind := reflect.Indirect(reflect.ValueOf(value)).Kind()

	var uniques []UniqueRule
	for _, c := range constraints {
		switch c.Rule {
		case RuleRequired:
			continue
		case RuleUnique:
			if c.Unique != nil {
				uniques = append(uniques, *c.Unique)
			}
			continue
		}

		if !staticRules[c.Rule] {
			return "", fmt.Errorf("unknown validation rule %q on field %s", c.Rule, field)
		}

		if stringOnlyRules[c.Rule] && kind != reflect.String {
			return messageFor(field, RuleString, "", kind), nil
		}

		if c.Rule == RuleMax && !sizedKinds[kind] {
			return messageFor(field, ruleInvalid, "", kind), nil
		}

		if err := v.validate.VarCtx(ctx, value, c.tag()); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
				fe := validationErrors[0]
				return messageFor(field, fe.Tag(), fe.Param(), fe.Kind()), nil
			}
			return "", fmt.Errorf("validating field %s with rule %s: %w", field, c.Rule, err)
		}
	}

	for _, rule := range uniques {
		if v.unique == nil {
			return "", fmt.Errorf("no uniqueness checker configured for field %s", field)
		}

		exists, err := v.unique.Exists(ctx, rule, value)
		if err != nil {
			return "", fmt.Errorf("checking uniqueness of %s: %w", field, err)
		}
		if exists {
			return messageFor(field, RuleUnique, "", kind), nil
		}
	}

	return "", nil
}

func hasRule(constraints []Constraint, rule string) bool {
	for _, c := range constraints {
		if c.Rule == rule {
			return true
		}
	}
	return false
}

// isEmpty treats nil, blank strings and empty collections as absent input.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isEmpty(rv.Elem().Interface())
	}
	return false
}
