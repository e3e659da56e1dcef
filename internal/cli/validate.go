package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewValidateCmd builds the validate command: parse a plan file and
// report whether it satisfies the five structural invariants, without
// driving any action.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Validate a deployment plan without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := loadPlan(args[0])
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "✗ invalid plan: %s\n", err)
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ valid plan: %d action(s)\n", len(workflow.Actions))
			return nil
		},
	}
}
