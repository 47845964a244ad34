// Package request holds the form requests accepted by the HTTP layer and
// the rule sets they share.
package request

import (
	"strings"

	"github.com/deppfellow/go-profile/internal/validation"
)

const (
	// UsersTable is where profile emails must be unique.
	UsersTable = "users"

	// MaxNameLength and MaxEmailLength mirror the users table columns.
	MaxNameLength  = 255
	MaxEmailLength = 255
)

// NameRules returns the constraints for a profile name.
func NameRules() []validation.Constraint {
	return []validation.Constraint{
		validation.Required(),
		validation.String(),
		validation.Max(MaxNameLength),
	}
}

// EmailRules returns the constraints for a profile email. The uniqueness
// check ignores the users row of userID, when given, so a user can re-submit
// their own unchanged address.
func EmailRules(userID *string) []validation.Constraint {
	return []validation.Constraint{
		validation.Required(),
		validation.String(),
		validation.Lowercase(),
		validation.Email(),
		validation.Max(MaxEmailLength),
		validation.Unique(UsersTable, "email", validation.IgnoreID(userID)),
	}
}

// ProfileRules is the rule set shared by every request that writes a
// user's name and email.
func ProfileRules(userID *string) validation.RuleSet {
	return validation.RuleSet{
		"name":  NameRules(),
		"email": EmailRules(userID),
	}
}

// ProfileUpdateRequest is the payload of PATCH /api/v1/settings/profile.
type ProfileUpdateRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

// Rules implements validation.FormRequest.
func (r *ProfileUpdateRequest) Rules(userID *string) validation.RuleSet {
	return ProfileRules(userID)
}

// Values implements validation.FormRequest. Surrounding whitespace is not
// part of a submitted value.
func (r *ProfileUpdateRequest) Values() map[string]any {
	return map[string]any{
		"name":  strings.TrimSpace(r.Name),
		"email": strings.TrimSpace(r.Email),
	}
}

// Normalize trims the submitted values in place, once they passed validation.
func (r *ProfileUpdateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// NewProfileUpdateRequest returns an empty payload to bind into.
func NewProfileUpdateRequest() *ProfileUpdateRequest {
	return &ProfileUpdateRequest{}
}
