package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

// NewResumeCmd builds the resume command: reload a persisted workflow
// and call Deploy again, continuing from exactly the action it
// previously stopped on.
func NewResumeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "resume <name>",
		Short: "Resume a previously stopped deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			workflow, err := application.Repository.Load(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading workflow %q: %w", args[0], err)
			}

			if err := usecase.RequireProgress(workflow); err != nil {
				return err
			}

			if !yes && !application.Config.NonInteractive && len(workflow.Actions) > 0 {
				head := workflow.Actions[0]
				confirm := promptui.Prompt{
					Label:     fmt.Sprintf("Resume %q from %s (%s)?", args[0], head.ContractName, head.ActionState),
					IsConfirm: true,
				}
				if _, err := confirm.Run(); err != nil {
					return fmt.Errorf("resume cancelled")
				}
			}

			workflow = application.Driver.Deploy(ctx, workflow)

			if err := application.Repository.Save(ctx, args[0], workflow); err != nil {
				return fmt.Errorf("saving workflow state: %w", err)
			}

			if len(workflow.Actions) > 0 {
				head := workflow.Actions[0]
				return fmt.Errorf("deployment stopped at %q (%s): %s", head.ContractName, head.ActionState, head.ErrorMessage)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deployment %q completed: %d actions deployed\n", args[0], len(workflow.Completed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
