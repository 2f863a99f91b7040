package reconcile

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/valory-xyz/bumper/pkg/manifest"
)

// Diff renders a unified diff between the manifest's source bytes and its
// current in-memory state. Returns an empty string when nothing changed.
func Diff(m *manifest.Manifest) (string, error) {
	after, err := m.MarshalIndent()
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(m.Source())),
		B:        difflib.SplitLines(string(after)),
		FromFile: m.Path(),
		ToFile:   m.Path() + " (bumped)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
