package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simbachain/libsimba-deploy/internal/adapters/render"
)

// NewStatusCmd builds the status command: print a persisted
// workflow's per-action state as a table.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <name>",
		Short: "Show the state of a previously run or resumed deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := getApp(cmd)
			if err != nil {
				return err
			}

			workflow, err := application.Repository.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("loading workflow %q: %w", args[0], err)
			}

			render.NewStatusRenderer(cmd.OutOrStdout()).RenderWorkflow(workflow)
			return nil
		},
	}
}
