package cli

import (
	"fmt"

	"github.com/soyeahso/workflow-agents/internal/config"
	"github.com/spf13/cobra"
)

const builtinLabel = "(built-in defaults)"

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path [config-path]",
		Short: "Print the config file that would be used",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if useDefaults {
				fmt.Fprintln(cmd.OutOrStdout(), builtinLabel)
				return nil
			}
			explicit := cfgFile
			if len(args) > 0 {
				explicit = args[0]
			}
			loc, err := config.Locate(explicit)
			if err != nil {
				return err
			}
			if loc.UseDefaults() {
				fmt.Fprintln(cmd.OutOrStdout(), builtinLabel)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc.Path)
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <agent> [field]",
		Short: "Print one normalized agent, or one field of it (e.g. idle.task)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := resolveAgents(cfgFile)
			if err != nil {
				return err
			}

			agent, ok := config.FindAgent(records, args[0])
			if !ok {
				return fmt.Errorf("agent %q not found", args[0])
			}
			if len(args) == 1 {
				return render(cmd.OutOrStdout(), agent, outputFormat)
			}

			path, err := config.ParseFieldPath(args[1])
			if err != nil {
				return err
			}
			val, ok := config.FieldValue(agent, path)
			if !ok {
				return fmt.Errorf("field %q not found on agent %q", args[1], args[0])
			}
			return printValue(cmd.OutOrStdout(), val, outputFormat)
		},
	}
}
