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

// scriptOptions holds options for the script command
type scriptOptions struct {
	skipConfirm bool
	list        bool
}

// newScriptCmd creates the script subcommand
func newScriptCmd() *cobra.Command {
	opts := &scriptOptions{}

	cmd := &cobra.Command{
		Use:   "script [NAMESPACE POD SCRIPT]",
		Short: "Run a catalog script in a pod",
		Long: `Run a catalog script inside a pod through the backend.

Only scripts from the backend's catalog can run; arbitrary commands
are not accepted. Use --list to see the catalog.

Examples:
  podgrid script --list
  podgrid script prod web-7f9 show-env
  podgrid script prod web-7f9 show-mounts --yes`,
		Args: func(_ *cobra.Command, args []string) error {
			if opts.list {
				if len(args) != 0 {
					return fmt.Errorf("--list takes no arguments")
				}
				return nil
			}
			if len(args) != 3 {
				return fmt.Errorf("expected NAMESPACE POD SCRIPT, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return runScriptList(cmd)
			}
			return runScript(cmd, opts, args[0], args[1], args[2])
		},
	}

	cmd.Flags().BoolVarP(&opts.skipConfirm, "yes", "y", false,
		"skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.list, "list", false,
		"list the catalog scripts and exit")

	return cmd
}

// runScriptList prints the backend's script catalog
func runScriptList(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	apiClient := client.New(GlobalOptions.Config.Backend)

	scripts, err := apiClient.FetchScripts(GlobalOptions.Context)
	if err != nil {
		return fmt.Errorf("failed to fetch script catalog: %w", err)
	}

	if len(scripts) == 0 {
		_, _ = fmt.Fprintln(out, "No scripts in the catalog.")
		return nil
	}

	for _, name := range scripts {
		_, _ = fmt.Fprintln(out, name)
	}
	return nil
}

// runScript executes a catalog script in the given pod
func runScript(cmd *cobra.Command, opts *scriptOptions, namespace, name, script string) error {
	ctx := GlobalOptions.Context
	printer := cli.NewPrinter(cmd.OutOrStdout())
	fqdn := k8s.PodRecord{Name: name, Namespace: namespace}.FQDN()

	printer.PrintTarget(fqdn, "")

	confirmed, err := cli.ConfirmPodAction(fmt.Sprintf("Run %q in", script), fqdn, cli.ConfirmOptions{
		SkipPrompt: opts.skipConfirm,
		Input:      cmd.InOrStdin(),
		Output:     cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !confirmed {
		printer.PrintError("script cancelled")
		return nil
	}

	apiClient := client.New(GlobalOptions.Config.Backend)
	scriptOutput, err := apiClient.RunScript(ctx, namespace, name, script)
	if err != nil {
		var actionErr *client.ActionError
		if errors.As(err, &actionErr) {
			printer.PrintError(actionErr.Message)
			if actionErr.Detail != "" {
				printer.PrintOutput(actionErr.Detail)
			}
			return fmt.Errorf("script refused")
		}
		return fmt.Errorf("failed to run script: %w", err)
	}

	logger.Info("script completed", "namespace", namespace, "pod", name, "script", script)
	printer.PrintSuccess(fmt.Sprintf("Ran %q in %s", script, fqdn))
	printer.PrintOutput(scriptOutput)

	return nil
}
