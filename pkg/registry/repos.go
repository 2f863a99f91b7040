package registry

// DefaultRepos returns the fleet of repositories whose published dev
// packages are aggregated during a run. Order matters: repositories are
// fetched and their claims recorded in this order.
func DefaultRepos() []string {
	return []string{
		"valory-xyz/open-aea",
		"valory-xyz/open-autonomy",
		"valory-xyz/mech",
		"valory-xyz/mech-tools-dev",
		"valory-xyz/mech-client",
		"valory-xyz/mech-predict",
		"valory-xyz/mech-interact",
		"valory-xyz/trader",
		"valory-xyz/market-creator",
		"valory-xyz/IEKit",
		"valory-xyz/optimus",
		"valory-xyz/olas-sdk-starter",
		"valory-xyz/dev-template",
		"valory-xyz/academy-learning-service-template",
		"valory-xyz/meme-ooorr",
		"valory-xyz/governatooorr",
	}
}
