package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simbachain/libsimba-deploy/internal/domain/models"
	"github.com/simbachain/libsimba-deploy/internal/domain/plan"
)

// NewDeployCmd builds the deploy command: parse a plan file, drive it
// to completion or to the first failure, and persist the resulting
// state so a failed run can be resumed.
func NewDeployCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "deploy <plan-file>",
		Short: "Run a deployment plan to completion or to its first failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := getApp(cmd)
			if err != nil {
				return err
			}

			workflow, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			applyScopeDefaults(workflow, application)

			if name == "" {
				name = workflowName(args[0])
			}

			ctx := cmd.Context()
			workflow = application.Driver.Deploy(ctx, workflow)

			if err := application.Repository.Save(ctx, name, workflow); err != nil {
				return fmt.Errorf("saving workflow state: %w", err)
			}

			if len(workflow.Actions) > 0 {
				head := workflow.Actions[0]
				return fmt.Errorf("deployment stopped at %q (%s): %s — resume with `simba-deploy resume %s`", head.ContractName, head.ActionState, head.ErrorMessage, name)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deployment %q completed: %d actions deployed\n", name, len(workflow.Completed))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to persist this workflow's state under (defaults to the plan file's base name)")
	return cmd
}

// loadPlan reads path and parses it as JSON or YAML depending on its
// extension.
func loadPlan(path string) (*models.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return plan.ParseYAML(data)
	default:
		return plan.ParseJSON(data)
	}
}

// workflowName derives a default persistence name from a plan file's
// base name, stripped of its extension.
func workflowName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
