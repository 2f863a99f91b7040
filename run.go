package bumper

import (
	"context"

	"github.com/valory-xyz/bumper/pkg/logging"
	"github.com/valory-xyz/bumper/pkg/manifest"
	"github.com/valory-xyz/bumper/pkg/reconcile"
	"github.com/valory-xyz/bumper/pkg/registry"
)

// Run executes one reconciliation pass: aggregate the fleet's published dev
// packages, load the local manifest, reconcile, and write back when bumps
// exist. Per-repository fetch failures are diagnosed and skipped; a
// missing or malformed local manifest is fatal.
func (b *bumper) Run(ctx context.Context) (*reconcile.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Ctx(ctx)

	// Consult the fleet first; the local manifest is only opened once the
	// checked list is final
	aggregator := registry.NewAggregator(b.fetcher,
		registry.WithManifestPath(b.config.remotePath),
		registry.WithProgress(b.config.progress),
	)
	claims, checked, err := aggregator.Collect(ctx, b.config.repos)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("claims", claims.Len()).
		Int("checked", len(checked)).
		Msg("fleet aggregation finished")

	m, err := manifest.Load(b.config.manifestPath)
	if err != nil {
		return nil, err
	}

	result := reconcile.Reconcile(m, claims, checked)
	logger.Debug().Str("outcome", result.String()).Msg("reconciliation finished")

	if b.config.diff && result.HasUpdates() {
		diff, err := reconcile.Diff(m)
		if err != nil {
			return nil, err
		}
		result.Diff = diff
	}

	// Only runs with bumps touch the file, and never under dry-run
	if b.config.dryRun || !result.HasUpdates() {
		return result, nil
	}
	if err := m.Save(); err != nil {
		return nil, err
	}
	logger.Debug().Str("path", m.Path()).Int("bumped", len(result.Updated)).Msg("manifest written")

	return result, nil
}
