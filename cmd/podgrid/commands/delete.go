package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andri/podgrid/internal/logger"
	"github.com/andri/podgrid/pkg/cli"
	"github.com/andri/podgrid/pkg/client"
	"github.com/andri/podgrid/pkg/k8s"
)

// deleteOptions holds options for the delete command
type deleteOptions struct {
	skipConfirm bool
}

// newDeleteCmd creates the delete subcommand
func newDeleteCmd() *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete NAMESPACE POD",
		Short: "Delete a pod",
		Long: `Delete a pod through the backend.

The backend refuses to delete pods in the Running or Succeeded phase,
the same guard the grid applies. Deletion asks for confirmation unless
--yes is given.

Examples:
  podgrid delete prod web-7f9
  podgrid delete staging worker-0 --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().BoolVarP(&opts.skipConfirm, "yes", "y", false,
		"skip the confirmation prompt")

	return cmd
}

// runDelete executes the delete command
func runDelete(cmd *cobra.Command, opts *deleteOptions, namespace, name string) error {
	ctx := GlobalOptions.Context
	printer := cli.NewPrinter(cmd.OutOrStdout())
	fqdn := k8s.PodRecord{Name: name, Namespace: namespace}.FQDN()

	printer.PrintTarget(fqdn, "")

	confirmed, err := cli.ConfirmPodAction("Delete", fqdn, cli.ConfirmOptions{
		SkipPrompt: opts.skipConfirm,
		Input:      cmd.InOrStdin(),
		Output:     cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !confirmed {
		printer.PrintError("deletion cancelled")
		return nil
	}

	apiClient := client.New(GlobalOptions.Config.Backend)
	if err := apiClient.DeletePod(ctx, namespace, name); err != nil {
		var actionErr *client.ActionError
		if errors.As(err, &actionErr) {
			printer.PrintError(actionErr.Message)
			if actionErr.Detail != "" {
				printer.PrintOutput(actionErr.Detail)
			}
			return fmt.Errorf("delete refused")
		}
		return fmt.Errorf("failed to delete pod: %w", err)
	}

	logger.Info("pod deleted", "namespace", namespace, "pod", name)
	printer.PrintSuccess(fmt.Sprintf("Deleted %s", fqdn))

	return nil
}
