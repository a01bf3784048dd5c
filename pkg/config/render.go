package config

import (
	"github.com/pelletier/go-toml/v2"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// Render renders the effective configuration in config-file syntax, so
// the output of `gcd config` can be pasted into ~/.config/gcd/config.toml.
func (c *Config) Render() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, gcderrors.Wrap(err, "failed to render config")
	}
	return data, nil
}
