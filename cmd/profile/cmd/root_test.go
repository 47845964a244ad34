package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/go-profile/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules", "--user-id", "user_1")
	require.NoError(t, err)

	var rules validation.RuleSet
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.ElementsMatch(t, []string{"name", "email"}, rules.Fields())

	unique := rules.Unique("email")
	require.NotNil(t, unique)
	require.NotNil(t, unique.IgnoreID)
	assert.Equal(t, "user_1", *unique.IgnoreID)
}

func TestRulesCommand_Anonymous(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)

	var rules validation.RuleSet
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.False(t, rules.Unique("email").Ignores())
	assert.NotContains(t, out, "ignore_id")
}

func TestRulesCommand_Deterministic(t *testing.T) {
	first, err := execute(t, "rules", "--user-id", "user_1")
	require.NoError(t, err)
	second, err := execute(t, "rules", "--user-id", "user_1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmailPreviewCommand(t *testing.T) {
	out, err := execute(t, "email", "preview", "email_changed", "--dir", "../../../templates/emails")

	require.NoError(t, err)
	assert.Contains(t, out, "jane@example.com")
}

func TestEmailPreviewCommand_Unknown(t *testing.T) {
	_, err := execute(t, "email", "preview", "welcome")

	assert.Error(t, err)
}
