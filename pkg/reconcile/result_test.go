package reconcile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valory-xyz/bumper/pkg/reconcile"
)

func TestResultPrint(t *testing.T) {
	result := &reconcile.Result{
		CheckedRepos: []string{"valory-xyz/open-aea", "valory-xyz/trader"},
		Updated: []reconcile.Update{
			{Name: "protocol/valory/acn/1.1.0", OldHash: "bafybeiold1", NewHash: "bafybeinew1", Repo: "valory-xyz/open-aea"},
			{Name: "connection/valory/ledger/0.19.0", OldHash: "bafybeiold2", NewHash: "bafybeinew2", Repo: "valory-xyz/trader"},
		},
		Collisions: []reconcile.Collision{
			{Name: "skill/valory/abci/0.1.0", Repos: []string{"valory-xyz/open-aea", "valory-xyz/trader"}},
		},
		NotFound:  []string{"contract/valory/gnosis/0.1.0"},
		Unchanged: 3,
	}

	var buf strings.Builder
	result.Print(&buf)

	expected := `Checked 2 repo(s): valory-xyz/open-aea, valory-xyz/trader

Bumped 2 package(s):
  protocol/valory/acn/1.1.0
    bafybeiold1 -> bafybeinew1 (from valory-xyz/open-aea)
  connection/valory/ledger/0.19.0
    bafybeiold2 -> bafybeinew2 (from valory-xyz/trader)

Skipped 1 package(s) due to name collision:
  skill/valory/abci/0.1.0 — claimed by: valory-xyz/open-aea, valory-xyz/trader

1 package(s) not found in any checked repo:
  contract/valory/gnosis/0.1.0
`
	assert.Equal(t, expected, buf.String())
}

func TestResultPrintUpToDate(t *testing.T) {
	result := &reconcile.Result{
		CheckedRepos: []string{"valory-xyz/open-aea"},
		Unchanged:    12,
	}

	var buf strings.Builder
	result.Print(&buf)

	expected := "Checked 1 repo(s): valory-xyz/open-aea\n\nAll packages are up to date.\n"
	assert.Equal(t, expected, buf.String())
}

func TestResultPrintNothingChecked(t *testing.T) {
	result := &reconcile.Result{}

	var buf strings.Builder
	result.Print(&buf)

	assert.Equal(t, "Checked 0 repo(s): \n\nAll packages are up to date.\n", buf.String())
}

func TestResultString(t *testing.T) {
	result := &reconcile.Result{
		Updated:    []reconcile.Update{{Name: "a"}},
		Collisions: []reconcile.Collision{{Name: "b"}, {Name: "c"}},
		NotFound:   []string{"d"},
		Unchanged:  7,
	}
	assert.Equal(t, "1 bumped, 2 collisions, 1 not found, 7 unchanged", result.String())
}
