// Package cmd holds the cobra commands of the profile binary.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Each call returns a fresh tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "profile",
		Short: "Profile settings API",
		Long: `profile serves the profile settings API of the authenticated user.

Commands:
  serve    - start the HTTP server and the background job worker
  migrate  - apply database migrations
  rules    - print the profile validation rules as JSON
  email    - preview notification email templates`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newRulesCommand(),
		newEmailCommand(),
	)

	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}
