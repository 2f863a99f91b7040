// Package reconcile compares a local packages manifest against the claims
// aggregated from a repository fleet and bumps third_party hashes that a
// single repository has republished. Names claimed by several repositories
// are reported as collisions and left untouched; names no checked
// repository claims are reported as not found.
package reconcile

import (
	"github.com/valory-xyz/bumper/pkg/manifest"
	"github.com/valory-xyz/bumper/pkg/registry"
)

// Reconcile walks the manifest's third_party entries in file order and
// sorts each into exactly one outcome:
//
//   - no claim: reported as not found
//   - more than one claim: reported as a collision, hash left alone even
//     when every claimant agrees
//   - one claim with a different hash: entry bumped in place
//   - one claim with the same hash: counted as unchanged
//
// The manifest is mutated in place; checked is carried through to the
// result for reporting only.
func Reconcile(m *manifest.Manifest, claims registry.Claims, checked []string) *Result {
	result := &Result{CheckedRepos: checked}

	for _, name := range m.ThirdPartyNames() {
		localHash := m.ThirdParty[name]
		published := claims.For(name)

		switch {
		case len(published) == 0:
			result.NotFound = append(result.NotFound, name)
		case len(published) > 1:
			result.Collisions = append(result.Collisions, Collision{
				Name:  name,
				Repos: claims.Claimants(name),
			})
		case published[0].Hash != localHash:
			m.ThirdParty[name] = published[0].Hash
			result.Updated = append(result.Updated, Update{
				Name:    name,
				OldHash: localHash,
				NewHash: published[0].Hash,
				Repo:    published[0].Repo,
			})
		default:
			result.Unchanged++
		}
	}

	return result
}
