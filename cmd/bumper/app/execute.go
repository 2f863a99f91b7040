package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/valory-xyz/bumper/internal/cmd/output"
)

// Execute parses args and runs the selected command under ctx. main.go
// calls this once per invocation.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand builds the bumper root command, its flags, and the
// subcommands hanging off it.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bumper",
		Short:   "Keep third-party package hashes in sync with their source repositories",
		Version: a.version,
		Long: `Bumper reconciles the third_party section of a local packages.json
against the packages published by a fleet of GitHub repositories.

Each repository's packages/packages.json is fetched over the GitHub
contents API and its dev packages are collected as hash claims. A local
package claimed by exactly one repository is bumped to the claimed hash;
names claimed by several repositories are skipped and reported. The
local file is rewritten only when something changed.`,
		Example: `  bumper                     # Check and bump packages.json in place
  bumper --dry-run           # Report what would change without writing
  bumper --dry-run --diff    # Preview the rewrite as a unified diff
  bumper -o json             # Machine-readable result
  bumper repos               # List the configured repository fleet`,
		RunE:              a.runBump,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.bumper.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "chatty output, same as --log-level=debug")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "suppress routine output, same as --log-level=warn")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "turn off color in console logs")
	rootCmd.PersistentFlags().StringVarP(&a.config.Output, "output", "o", "", "output format: text, table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error); wins over -v/-q")

	// Keep --format as a hidden alias for --output
	rootCmd.PersistentFlags().StringVar(&a.config.Output, "format", "", "")
	_ = rootCmd.PersistentFlags().MarkHidden("format")

	// Flags of the reconciliation pass itself
	rootCmd.Flags().Bool("dry-run", false, "report changes without writing the manifest")
	rootCmd.Flags().Bool("diff", false, "show a unified diff of the manifest rewrite")
	rootCmd.Flags().String("manifest", "", "path to the local package manifest (default packages/packages.json)")

	// --version prints the same line the version subcommand does
	rootCmd.SetVersionTemplate("bumper {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand runs before any command. It folds parsed flag values back
// into the config and rebuilds the logger; unusable values are rejected
// before a command sees them.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand,
	// so lookup errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	outputFormat := mustGetString(cmd, "output")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, outputFormat, logLevel)

	// Validate after the merge so bad values from the environment or a
	// config file are caught too, not just flag typos
	if _, err := output.ParseFormat(a.config.Output); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands hangs the subcommands off the root.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewReposCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError prints an error and exits with status 1. It is meant for
// top-level error handling in main.go.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("flag " + name + " not registered: " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("flag " + name + " not registered: " + err.Error())
	}
	return val
}
