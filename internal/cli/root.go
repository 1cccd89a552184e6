package cli

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/soyeahso/workflow-agents/internal/config"
	"github.com/soyeahso/workflow-agents/internal/domain"
	"github.com/soyeahso/workflow-agents/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	useDefaults  bool
	outputFormat string
	logLevel     string

	// set in PersistentPreRunE
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow-agents [config-path]",
		Short: "Validate and normalize workflow agent configuration",
		Long: `workflow-agents reads the agent pane layout of a multi-pane workflow,
validates it, fills in defaults and prints the normalized agent list for the
shell scripts that start the workflow.

The config file is taken from the argument, then $` + config.EnvConfigPath + `,
then config/workflow_agents.yaml under the repository root. When none of these
exist the built-in agent list is printed.

A config file named like a sub-command (path, get, schema, version) must be
given with a directory prefix, for example ./path.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if level == "" {
				level = os.Getenv(config.EnvLogLevel)
			}
			if level == "" {
				level = logging.DefaultLevel
			}
			log = logging.New(logging.Console(cmd.ErrOrStderr()), level).With("run", uuid.NewString())
			if !logging.ValidLevel(level) {
				log.Warn().Str("level", level).Msg("unknown log level, using warn")
			}
			return checkFormat(outputFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := cfgFile
			if len(args) > 0 {
				explicit = args[0]
			}
			records, _, err := resolveAgents(explicit)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), records, outputFormat)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config/workflow_agents.yaml under the repo root)")
	cmd.PersistentFlags().BoolVar(&useDefaults, "defaults", false, "use the built-in agent list and ignore any config file")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", formatJSON, "output format (json, yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newPathCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// resolveAgents returns the normalized agent list for an invocation along
// with where it came from.
func resolveAgents(explicit string) ([]domain.Record, config.Location, error) {
	builtin := config.Location{Source: config.SourceBuiltin}
	if useDefaults {
		return config.DefaultAgents(), builtin, nil
	}

	loc, err := config.Locate(explicit)
	if err != nil {
		return nil, loc, err
	}
	llog := log.Sub("locator")
	if loc.UseDefaults() {
		llog.Info().Msg("no config file found, using built-in defaults")
		return config.DefaultAgents(), loc, nil
	}
	llog.Info().Str("path", loc.Path).Stringer("source", loc.Source).Msg("using config file")

	records, err := config.Load(loc.Path, log)
	if err != nil {
		return nil, loc, err
	}
	return records, loc, nil
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	printError(stderr, err)
	return ExitCode(err)
}

// Execute runs the root command against the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
