package cmd

import (
	"fmt"

	"github.com/deppfellow/go-profile/internal/lib/email"
	"github.com/spf13/cobra"
)

func newEmailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Work with notification email templates",
	}

	cmd.AddCommand(newEmailPreviewCommand())
	return cmd
}

func newEmailPreviewCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "preview <template>",
		Short:   "Render a template with sample data",
		Example: `  profile email preview email_changed > /tmp/email_changed.html`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := email.Preview(dir, email.Template(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", email.DefaultTemplateDir, "template directory")

	return cmd
}
