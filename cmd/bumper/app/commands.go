package app

import (
	"github.com/spf13/cobra"

	"github.com/valory-xyz/bumper/internal/cmd/output"
	"github.com/valory-xyz/bumper/pkg/registry"
)

// NewReposCommand creates the repos command listing the repository fleet.
func (a *App) NewReposCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List the repositories checked for package claims",
		Example: `  bumper repos               # List the configured fleet
  bumper repos -o json       # As a JSON array`,
		RunE: func(_ *cobra.Command, _ []string) error {
			repos := a.config.Repos
			if len(repos) == 0 {
				repos = registry.DefaultRepos()
			}
			return output.FormatRepos(repos, a.globalFlags())
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("bumper %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
