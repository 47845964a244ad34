package request

import (
	"testing"

	"github.com/deppfellow/go-profile/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestProfileRules_Keys(t *testing.T) {
	rules := ProfileRules(nil)

	assert.Equal(t, []string{"email", "name"}, rules.Fields())
}

func TestProfileRules_NameConstraints(t *testing.T) {
	name := ProfileRules(ptr("user_1"))["name"]

	require.Len(t, name, 3)
	assert.Equal(t, validation.RuleRequired, name[0].Rule)
	assert.Equal(t, validation.RuleString, name[1].Rule)
	assert.Equal(t, validation.RuleMax, name[2].Rule)
	assert.Equal(t, "255", name[2].Param)
}

func TestProfileRules_EmailConstraints(t *testing.T) {
	email := ProfileRules(nil)["email"]

	var rules []string
	for _, c := range email {
		rules = append(rules, c.Rule)
	}

	assert.Equal(t, []string{
		validation.RuleRequired,
		validation.RuleString,
		validation.RuleLowercase,
		validation.RuleEmail,
		validation.RuleMax,
		validation.RuleUnique,
	}, rules)
	assert.Equal(t, "255", email[4].Param)
}

func TestProfileRules_UniqueIgnoresCurrentUser(t *testing.T) {
	unique := ProfileRules(ptr("user_1")).Unique("email")

	require.NotNil(t, unique)
	assert.Equal(t, UsersTable, unique.Table)
	assert.Equal(t, "email", unique.Column)
	assert.True(t, unique.Ignores())
	require.NotNil(t, unique.IgnoreID)
	assert.Equal(t, "user_1", *unique.IgnoreID)
	assert.Equal(t, "id", unique.IgnoreColumn)
}

func TestProfileRules_UniqueWithoutUser(t *testing.T) {
	unique := ProfileRules(nil).Unique("email")

	require.NotNil(t, unique)
	assert.False(t, unique.Ignores())
	assert.Nil(t, unique.IgnoreID)
}

func TestProfileRules_Deterministic(t *testing.T) {
	assert.Equal(t, ProfileRules(ptr("user_1")), ProfileRules(ptr("user_1")))
	assert.Equal(t, ProfileRules(nil), ProfileRules(nil))
}

func TestProfileRules_DoesNotAliasUserID(t *testing.T) {
	id := "user_1"
	rules := ProfileRules(&id)

	id = "user_2"

	assert.Equal(t, "user_1", *rules.Unique("email").IgnoreID)
}

func TestProfileUpdateRequest(t *testing.T) {
	req := &ProfileUpdateRequest{Name: "  Jane Doe ", Email: " jane@example.com\n"}

	assert.Equal(t, ProfileRules(ptr("user_1")), req.Rules(ptr("user_1")))
	assert.Equal(t, map[string]any{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	}, req.Values())

	// Values does not modify the request.
	assert.Equal(t, "  Jane Doe ", req.Name)

	req.Normalize()
	assert.Equal(t, "Jane Doe", req.Name)
	assert.Equal(t, "jane@example.com", req.Email)
}
