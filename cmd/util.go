package cmd

import (
	"path/filepath"

	"github.com/tristanpoland/GCD/pkg/config"
	"github.com/tristanpoland/GCD/pkg/discovery"
	"github.com/tristanpoland/GCD/pkg/index"
)

// legacyIndexName is the file earlier gcd releases kept their
// name-to-path map in, next to the config.
const legacyIndexName = "config.json"

// openStore opens the configured index store, carrying over an index left
// behind by an earlier release when the configured one does not exist yet.
func openStore(cfg *config.Config) (index.Store, error) {
	store, err := index.Open(cfg.Index.Backend, cfg.Index.Path)
	if err != nil {
		return nil, err
	}

	legacy := filepath.Join(config.Dir(), legacyIndexName)
	migrated, err := index.MigrateLegacy(store, legacy)
	if err != nil {
		logger.Warn("could not migrate legacy index", "path", legacy, "error", err)
	} else if migrated {
		logger.Info("migrated legacy index", "from", legacy, "to", store.Path())
	}

	return store, nil
}

// newEngine wires a discovery engine from cfg.
func newEngine(cfg *config.Config) (*discovery.Engine, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	scanner := discovery.NewScanner(cfg.Discovery.Markers, cfg.Discovery.Exclude, cfg.Discovery.MaxDepth, logger)
	return discovery.NewEngine(store, scanner, logger), nil
}

// loadIndex reads the index for a read-only command.
func loadIndex(cfg *config.Config) (*index.Index, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return index.Load(store, logger)
}
