package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/valory-xyz/bumper/internal/cmd/globals"
	"github.com/valory-xyz/bumper/internal/cmd/table"
	"github.com/valory-xyz/bumper/pkg/reconcile"
)

// FormatResult renders a reconciliation result in the requested format.
// Text output is the canonical run report; table output lists one row per
// package that needed attention.
func FormatResult(result *reconcile.Result, globalFlags *globals.Flags) error {
	formatter := NewFormatter(DetectFormat(globalFlags.Output))

	var data any
	switch DetectFormat(globalFlags.Output) {
	case FormatTable:
		data = ResultToData(result)
	default:
		data = result
	}

	return formatter.Format(os.Stdout, data)
}

// FormatRepos renders the repository fleet in the requested format.
func FormatRepos(repos []string, globalFlags *globals.Flags) error {
	formatter := NewFormatter(DetectFormat(globalFlags.Output))

	var data any
	switch DetectFormat(globalFlags.Output) {
	case FormatTable:
		data = ReposToData(repos)
	default:
		data = repos
	}

	return formatter.Format(os.Stdout, data)
}

// ResultToData converts a reconciliation result to table format. Unchanged
// packages are summarised by the count column rather than listed.
func ResultToData(result *reconcile.Result) Data {
	rows := make([][]string, 0, len(result.Updated)+len(result.Collisions)+len(result.NotFound))

	for _, update := range result.Updated {
		rows = append(rows, []string{
			update.Name,
			"bumped",
			table.Hash(update.OldHash),
			table.Hash(update.NewHash),
			update.Repo,
		})
	}
	for _, collision := range result.Collisions {
		rows = append(rows, []string{
			collision.Name,
			"collision",
			"",
			"",
			strings.Join(collision.Repos, ", "),
		})
	}
	for _, name := range result.NotFound {
		rows = append(rows, []string{name, "not found", "", "", ""})
	}

	return Data{
		Headers: []string{"Package", "Status", "Old Hash", "New Hash", "Source"},
		Rows:    rows,
	}
}

// ReposToData converts a repository list to table format.
func ReposToData(repos []string) Data {
	rows := make([][]string, 0, len(repos))
	for i, repo := range repos {
		rows = append(rows, []string{strconv.Itoa(i + 1), repo})
	}

	return Data{
		Headers:         []string{"#", "Repository"},
		Rows:            rows,
		ColumnAlignment: []table.Align{table.AlignRight, table.AlignLeft},
	}
}
