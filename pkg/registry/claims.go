// Package registry aggregates development package claims published by a
// fleet of GitHub repositories. Each repository's packages manifest declares
// a dev section mapping package names to content hashes; the aggregator
// fetches every manifest in fleet order and merges those sections into a
// single claim set, recording which repository claimed which name.
package registry

// Claim records that a repository publishes a development package under a
// given name with a given content hash.
type Claim struct {
	Name string `json:"name" yaml:"name"`
	Hash string `json:"hash" yaml:"hash"`
	Repo string `json:"repo" yaml:"repo"`
}

// Claims indexes claims by package name. Claims for the same name keep the
// order in which their repositories were processed.
type Claims map[string][]Claim

// Add appends a claim under its package name.
func (c Claims) Add(claim Claim) {
	c[claim.Name] = append(c[claim.Name], claim)
}

// For returns the claims recorded for a package name, nil when none exist.
func (c Claims) For(name string) []Claim {
	return c[name]
}

// Claimants returns the repositories claiming a package name, in claim
// order.
func (c Claims) Claimants(name string) []string {
	claims := c[name]
	if len(claims) == 0 {
		return nil
	}
	repos := make([]string, 0, len(claims))
	for _, claim := range claims {
		repos = append(repos, claim.Repo)
	}
	return repos
}

// Len returns the number of distinct package names with at least one claim.
func (c Claims) Len() int {
	return len(c)
}
