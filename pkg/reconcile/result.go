package reconcile

import (
	"fmt"
	"io"
	"strings"
)

// Update records a third_party entry bumped to a newly published hash.
type Update struct {
	Name    string `json:"name" yaml:"name"`
	OldHash string `json:"old_hash" yaml:"old_hash"`
	NewHash string `json:"new_hash" yaml:"new_hash"`
	Repo    string `json:"repo" yaml:"repo"`
}

// Collision records a package name claimed by more than one repository.
type Collision struct {
	Name  string   `json:"name" yaml:"name"`
	Repos []string `json:"repos" yaml:"repos"`
}

// Result is the outcome of one reconciliation run. Entries appear in local
// manifest order; CheckedRepos keeps fetch order.
type Result struct {
	CheckedRepos []string    `json:"checked_repos" yaml:"checked_repos"`
	Updated      []Update    `json:"updated" yaml:"updated"`
	Collisions   []Collision `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	NotFound     []string    `json:"not_found,omitempty" yaml:"not_found,omitempty"`
	Unchanged    int         `json:"unchanged" yaml:"unchanged"`

	// Diff holds a unified diff preview of the manifest changes when the
	// run requested one. Print does not render it.
	Diff string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// HasUpdates returns true when at least one entry was bumped. Only runs
// with updates write the manifest back.
func (r *Result) HasUpdates() bool {
	return len(r.Updated) > 0
}

// String returns a one-line summary of the run.
func (r *Result) String() string {
	return fmt.Sprintf("%d bumped, %d collisions, %d not found, %d unchanged",
		len(r.Updated), len(r.Collisions), len(r.NotFound), r.Unchanged)
}

// Print writes the plain-text report. The checked header always appears;
// the collision and not-found sections only when non-empty.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "Checked %d repo(s): %s\n\n", len(r.CheckedRepos), strings.Join(r.CheckedRepos, ", "))

	if len(r.Updated) > 0 {
		fmt.Fprintf(w, "Bumped %d package(s):\n", len(r.Updated))
		for _, update := range r.Updated {
			fmt.Fprintf(w, "  %s\n", update.Name)
			fmt.Fprintf(w, "    %s -> %s (from %s)\n", update.OldHash, update.NewHash, update.Repo)
		}
	} else {
		fmt.Fprintln(w, "All packages are up to date.")
	}

	if len(r.Collisions) > 0 {
		fmt.Fprintf(w, "\nSkipped %d package(s) due to name collision:\n", len(r.Collisions))
		for _, collision := range r.Collisions {
			fmt.Fprintf(w, "  %s — claimed by: %s\n", collision.Name, strings.Join(collision.Repos, ", "))
		}
	}

	if len(r.NotFound) > 0 {
		fmt.Fprintf(w, "\n%d package(s) not found in any checked repo:\n", len(r.NotFound))
		for _, name := range r.NotFound {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
