// Package cli wires cobra commands onto the App container: deploy,
// validate, status, resume.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simbachain/libsimba-deploy/internal/app"
	"github.com/simbachain/libsimba-deploy/internal/config"
)

type contextKey string

const appKey contextKey = "app"

// NewRootCmd builds the simba-deploy root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simba-deploy",
		Short: "Resumable smart contract deployment workflow engine",
		Long: `simba-deploy drives a declarative deployment plan — libraries,
contracts, method calls and proxies, with inter-action dependencies —
against a remote contract deployment platform. A run that stops on a
failed action can be continued from that action with the resume
command.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}

			v := config.SetupViper(wd, cmd)

			application, err := app.InitApp(v, cmd)
			if err != nil {
				return fmt.Errorf("initializing app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, application)

			if application.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, application.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("platform-url", "", "Base URL of the deployment platform API")
	rootCmd.PersistentFlags().String("api-key", "", "Deployment platform API key")
	rootCmd.PersistentFlags().String("org", "", "Organisation scope")
	rootCmd.PersistentFlags().String("app-name", "", "Application scope")
	rootCmd.PersistentFlags().String("blockchain", "", "Target blockchain")
	rootCmd.PersistentFlags().String("storage", "", "Storage backend for compiled designs")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts and the spinner")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewResumeCmd())

	return rootCmd
}

// getApp retrieves the wired App container the PersistentPreRunE
// stored in the command's context.
func getApp(cmd *cobra.Command) (*app.App, error) {
	instance := cmd.Context().Value(appKey)
	if instance == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	a, ok := instance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance in context")
	}
	return a, nil
}
