package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valory-xyz/bumper/pkg/manifest"
	"github.com/valory-xyz/bumper/pkg/reconcile"
	"github.com/valory-xyz/bumper/pkg/registry"
)

const localDocument = `{
    "dev": {
        "contract/valory/local_only/0.1.0": "bafybeidev"
    },
    "third_party": {
        "protocol/valory/acn/1.1.0": "bafybeiacnold",
        "protocol/valory/ipfs/0.1.0": "bafybeiipfs",
        "skill/valory/abci/0.1.0": "bafybeiabci",
        "contract/valory/gnosis/0.1.0": "bafybeignosis",
        "connection/valory/ledger/0.19.0": "bafybeiledgerold"
    }
}`

func parseLocal(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(localDocument), "packages.json")
	require.NoError(t, err)
	return m
}

func TestReconcile(t *testing.T) {
	m := parseLocal(t)

	claims := make(registry.Claims)
	// Bumped: one claim, new hash
	claims.Add(registry.Claim{Name: "protocol/valory/acn/1.1.0", Hash: "bafybeiacnnew", Repo: "valory-xyz/open-aea"})
	// Unchanged: one claim, same hash
	claims.Add(registry.Claim{Name: "protocol/valory/ipfs/0.1.0", Hash: "bafybeiipfs", Repo: "valory-xyz/open-aea"})
	// Collision: two claims with different hashes
	claims.Add(registry.Claim{Name: "skill/valory/abci/0.1.0", Hash: "bafybeix", Repo: "valory-xyz/open-aea"})
	claims.Add(registry.Claim{Name: "skill/valory/abci/0.1.0", Hash: "bafybeiy", Repo: "valory-xyz/trader"})
	// Bumped: later entry, different repo
	claims.Add(registry.Claim{Name: "connection/valory/ledger/0.19.0", Hash: "bafybeiledgernew", Repo: "valory-xyz/open-autonomy"})

	checked := []string{"valory-xyz/open-aea", "valory-xyz/open-autonomy", "valory-xyz/trader"}
	result := reconcile.Reconcile(m, claims, checked)

	assert.Equal(t, checked, result.CheckedRepos)

	// Updates follow manifest file order and mutate the manifest in place
	require.Len(t, result.Updated, 2)
	assert.Equal(t, reconcile.Update{
		Name:    "protocol/valory/acn/1.1.0",
		OldHash: "bafybeiacnold",
		NewHash: "bafybeiacnnew",
		Repo:    "valory-xyz/open-aea",
	}, result.Updated[0])
	assert.Equal(t, "connection/valory/ledger/0.19.0", result.Updated[1].Name)
	assert.Equal(t, "bafybeiacnnew", m.ThirdParty["protocol/valory/acn/1.1.0"])
	assert.Equal(t, "bafybeiledgernew", m.ThirdParty["connection/valory/ledger/0.19.0"])

	require.Len(t, result.Collisions, 1)
	assert.Equal(t, reconcile.Collision{
		Name:  "skill/valory/abci/0.1.0",
		Repos: []string{"valory-xyz/open-aea", "valory-xyz/trader"},
	}, result.Collisions[0])
	assert.Equal(t, "bafybeiabci", m.ThirdParty["skill/valory/abci/0.1.0"], "collisions never touch the local hash")

	assert.Equal(t, []string{"contract/valory/gnosis/0.1.0"}, result.NotFound)
	assert.Equal(t, "bafybeignosis", m.ThirdParty["contract/valory/gnosis/0.1.0"])

	assert.Equal(t, 1, result.Unchanged)
	assert.True(t, result.HasUpdates())

	// Dev entries are never reconciled
	assert.Equal(t, "bafybeidev", m.Dev["contract/valory/local_only/0.1.0"])
}

func TestReconcileCollisionWithEqualHashes(t *testing.T) {
	m := parseLocal(t)

	// Two repositories claim the same name with the hash the manifest
	// already has. Ambiguity still wins: no update, one collision.
	claims := make(registry.Claims)
	claims.Add(registry.Claim{Name: "skill/valory/abci/0.1.0", Hash: "bafybeiabci", Repo: "valory-xyz/mech"})
	claims.Add(registry.Claim{Name: "skill/valory/abci/0.1.0", Hash: "bafybeiabci", Repo: "valory-xyz/trader"})

	result := reconcile.Reconcile(m, claims, []string{"valory-xyz/mech", "valory-xyz/trader"})

	assert.False(t, result.HasUpdates())
	require.Len(t, result.Collisions, 1)
	assert.Equal(t, []string{"valory-xyz/mech", "valory-xyz/trader"}, result.Collisions[0].Repos)
	assert.Equal(t, "bafybeiabci", m.ThirdParty["skill/valory/abci/0.1.0"])
}

func TestReconcileSingleClaimIsAuthoritative(t *testing.T) {
	m := parseLocal(t)

	// Any single claimant bumps the hash, whichever repository it is
	claims := make(registry.Claims)
	claims.Add(registry.Claim{Name: "contract/valory/gnosis/0.1.0", Hash: "bafybeignosisnew", Repo: "valory-xyz/meme-ooorr"})

	result := reconcile.Reconcile(m, claims, []string{"valory-xyz/meme-ooorr"})

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "valory-xyz/meme-ooorr", result.Updated[0].Repo)
	assert.Equal(t, "bafybeignosisnew", m.ThirdParty["contract/valory/gnosis/0.1.0"])
}

func TestReconcileNoClaims(t *testing.T) {
	m := parseLocal(t)

	result := reconcile.Reconcile(m, make(registry.Claims), nil)

	assert.False(t, result.HasUpdates())
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Collisions)
	assert.Len(t, result.NotFound, 5)
	assert.Equal(t, 0, result.Unchanged)
}

func TestReconcileEmptyThirdParty(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"third_party": {}}`), "packages.json")
	require.NoError(t, err)

	claims := make(registry.Claims)
	claims.Add(registry.Claim{Name: "skill/valory/abci/0.1.0", Hash: "bafybeix", Repo: "valory-xyz/mech"})

	result := reconcile.Reconcile(m, claims, []string{"valory-xyz/mech"})

	assert.False(t, result.HasUpdates())
	assert.Empty(t, result.NotFound)
	assert.Equal(t, 0, result.Unchanged)
}

func TestReconcileIdempotent(t *testing.T) {
	m := parseLocal(t)

	claims := make(registry.Claims)
	claims.Add(registry.Claim{Name: "protocol/valory/acn/1.1.0", Hash: "bafybeiacnnew", Repo: "valory-xyz/open-aea"})

	first := reconcile.Reconcile(m, claims, []string{"valory-xyz/open-aea"})
	require.Len(t, first.Updated, 1)

	// A second pass against the same claims finds nothing left to bump
	second := reconcile.Reconcile(m, claims, []string{"valory-xyz/open-aea"})
	assert.Empty(t, second.Updated)
	assert.Equal(t, 1, second.Unchanged)
}
