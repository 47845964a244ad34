package cmd

import (
	"github.com/deppfellow/go-profile/internal/lib/utils"
	"github.com/deppfellow/go-profile/internal/request"
	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the profile validation rules as JSON",
		Long: `Print the rules a profile update is validated against.

With --user-id the email uniqueness rule ignores that user's own row,
as it does for an authenticated request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var id *string
			if cmd.Flags().Changed("user-id") {
				id = &userID
			}
			return utils.PrintJSON(cmd.OutOrStdout(), request.ProfileRules(id))
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "authenticated user id to ignore in the uniqueness rule")

	return cmd
}
