package app

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/valory-xyz/bumper"
	"github.com/valory-xyz/bumper/internal/cmd/globals"
	"github.com/valory-xyz/bumper/internal/cmd/output"
	"github.com/valory-xyz/bumper/pkg/logging"
	"github.com/valory-xyz/bumper/pkg/registry"
)

// runBump executes the reconciliation pass. This is the root command's RunE.
func (a *App) runBump(cmd *cobra.Command, _ []string) error {
	// Tag the whole pass with a run ID for log correlation
	ctx := logging.WithLogger(cmd.Context(), a.logger)
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.Ctx(ctx)

	dryRun := mustGetBool(cmd, "dry-run")
	diff := mustGetBool(cmd, "diff")
	manifestPath := mustGetString(cmd, "manifest")

	opts := []bumper.Option{
		bumper.WithDryRun(dryRun),
		bumper.WithDiff(diff),
	}
	if manifestPath != "" {
		opts = append(opts, bumper.WithManifestPath(manifestPath))
	}

	// The repository count is needed up front to size the progress bar
	repos := a.config.Repos
	if len(repos) == 0 {
		repos = registry.DefaultRepos()
	}

	var bar *progressbar.ProgressBar
	if a.showProgress() {
		bar = newProgressBar(len(repos))
		opts = append(opts, bumper.WithProgress(func(repo string) {
			bar.Describe("checking " + repo)
			_ = bar.Add(1)
		}))
	}

	b, err := a.BumperWithOptions(opts...)
	if err != nil {
		return err
	}

	logger.Debug().
		Int("repos", len(repos)).
		Bool("dry_run", dryRun).
		Msg("starting reconciliation pass")

	result, err := b.Run(ctx)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Int("updated", len(result.Updated)).
		Int("collisions", len(result.Collisions)).
		Int("not_found", len(result.NotFound)).
		Int("unchanged", result.Unchanged).
		Msg("reconciliation pass finished")

	if err := output.FormatResult(result, a.globalFlags()); err != nil {
		return err
	}

	// Structured formats carry the diff as a field; the text report gets
	// it appended after the summary
	if result.Diff != "" && output.DetectFormat(a.config.Output) == output.FormatText {
		fmt.Println()
		fmt.Print(result.Diff)
	}

	return nil
}

// showProgress reports whether the repository fetch loop should render a
// progress bar. The bar is suppressed for machine-readable output, for
// quiet runs, and when verbose logging would interleave with it.
func (a *App) showProgress() bool {
	if a.config.Quiet || a.config.Verbose {
		return false
	}
	if format := output.DetectFormat(a.config.Output); format != output.FormatText {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// newProgressBar builds the fetch-loop progress bar. It writes to stderr so
// the report on stdout stays clean.
func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("checking"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

// globalFlags bridges the app config to the shared output-formatting flags.
func (a *App) globalFlags() *globals.Flags {
	return &globals.Flags{
		Output:  a.config.Output,
		Quiet:   a.config.Quiet,
		Verbose: a.config.Verbose,
		NoColor: a.config.NoColor,
	}
}
