package validation

import (
	"sort"
	"strconv"
)

// Rule names understood by Validator.
const (
	RuleRequired  = "required"
	RuleString    = "string"
	RuleLowercase = "lowercase"
	RuleEmail     = "email"
	RuleMax       = "max"
	RuleUnique    = "unique"
)

// Constraint describes a single check applied to a field value.
//
// Constraints are plain data: building one never touches storage.
// They are evaluated later by a Validator.
type Constraint struct {
	// Rule is the constraint name (e.g. "required", "max", "unique").
	Rule string `json:"rule"`

	// Param is the optional rule argument (e.g. "255" for max).
	Param string `json:"param,omitempty"`

	// Unique is set only for uniqueness constraints.
	Unique *UniqueRule `json:"unique,omitempty"`
}

// UniqueRule requires a value to be absent from Table.Column, except for the
// row identified by IgnoreID (matched on IgnoreColumn) when IgnoreID is set.
type UniqueRule struct {
	Table        string  `json:"table"`
	Column       string  `json:"column"`
	IgnoreID     *string `json:"ignore_id,omitempty"`
	IgnoreColumn string  `json:"ignore_column,omitempty"`
}

// Ignores reports whether the rule excludes a record from the check.
func (u *UniqueRule) Ignores() bool {
	return u != nil && u.IgnoreID != nil
}

// RuleSet maps a field name to its ordered constraints.
type RuleSet map[string][]Constraint

// Fields returns the field names of the set in sorted order.
func (rs RuleSet) Fields() []string {
	fields := make([]string, 0, len(rs))
	for field := range rs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Unique returns the first uniqueness constraint declared on field, or nil.
func (rs RuleSet) Unique(field string) *UniqueRule {
	for _, c := range rs[field] {
		if c.Rule == RuleUnique {
			return c.Unique
		}
	}
	return nil
}

// Required fails on empty values.
func Required() Constraint { return Constraint{Rule: RuleRequired} }

// String fails when the value is not a string.
func String() Constraint { return Constraint{Rule: RuleString} }

// Lowercase fails when the value contains upper case characters.
func Lowercase() Constraint { return Constraint{Rule: RuleLowercase} }

// Email fails when the value is not a valid email address.
func Email() Constraint { return Constraint{Rule: RuleEmail} }

// Max limits string length (in characters) or numeric value.
func Max(n int) Constraint {
	return Constraint{Rule: RuleMax, Param: strconv.Itoa(n)}
}

// UniqueOption customizes a uniqueness constraint.
type UniqueOption func(*UniqueRule)

// IgnoreID excludes the row with the given id from the uniqueness check.
// A nil id leaves the check without exclusion.
func IgnoreID(id *string) UniqueOption {
	return func(u *UniqueRule) {
		if id == nil {
			u.IgnoreID = nil
			return
		}
		v := *id
		u.IgnoreID = &v
	}
}

// IgnoreColumn sets the column IgnoreID is matched against. Defaults to "id".
func IgnoreColumn(column string) UniqueOption {
	return func(u *UniqueRule) {
		u.IgnoreColumn = column
	}
}

// Unique requires the value to not already exist in table.column.
func Unique(table, column string, opts ...UniqueOption) Constraint {
	rule := &UniqueRule{
		Table:        table,
		Column:       column,
		IgnoreColumn: "id",
	}
	for _, opt := range opts {
		opt(rule)
	}
	return Constraint{
		Rule:   RuleUnique,
		Param:  table + "," + column,
		Unique: rule,
	}
}

// tag returns the go-playground/validator tag for static constraints.
// Uniqueness has no tag: it is checked against storage.
func (c Constraint) tag() string {
	if c.Param != "" && c.Rule == RuleMax {
		return c.Rule + "=" + c.Param
	}
	return c.Rule
}
