package bootstrap

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tristanpoland/GCD/pkg/config"
	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

var (
	lastLoadedConfig string
	loadedConfig     *config.Config
)

// InitConfig reads in the config file and GCD_ environment variables.
// A missing config file is not an error; every setting has a default.
func InitConfig(cfgFile string, logger *slog.Logger) (*config.Config, error) {
	requested := cfgFile

	// Skip if already loaded with same parameters (unless in test)
	if os.Getenv("GO_TEST") != "true" && loadedConfig != nil && requested == lastLoadedConfig {
		return loadedConfig, nil
	}

	// Reset Viper state to avoid carrying over stale settings from previous loads.
	viper.Reset()

	// The default location is set as a file rather than a search path: the
	// same directory may hold config.json from earlier releases, which is
	// an index, not configuration
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = filepath.Join(config.Dir(), config.FileName)
	}
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("GCD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if explicit || !(os.IsNotExist(err) || gcderrors.Is(err, fs.ErrNotExist)) {
			return nil, gcderrors.NewConfigErrorWithCause("", "could not read "+cfgFile, err)
		}
		logger.Debug("no config file, using defaults", "path", cfgFile)
	} else {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Update state
	lastLoadedConfig = requested
	loadedConfig = cfg

	return cfg, nil
}

// Reset clears the cached configuration state.
func Reset() {
	lastLoadedConfig = ""
	loadedConfig = nil
}
