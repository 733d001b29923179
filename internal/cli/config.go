package cli

import (
	"errors"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errs "github.com/cim-modules/modgraph/pkg/errors"
	"github.com/cim-modules/modgraph/pkg/registry"
)

// Configuration keys. Each can be set in the config file, through a
// MODGRAPH_<KEY> environment variable, or by the flag bound to it.
const (
	keyInput   = "input"
	keyFormat  = "format"
	keyNoCache = "no_cache"
	keyRankDir = "rankdir"
)

// newConfig creates a viper instance with defaults and environment overrides.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyInput, registry.DefaultPath)
	v.SetDefault(keyFormat, "")
	v.SetDefault(keyNoCache, false)
	v.SetDefault(keyRankDir, "TB")
	return v
}

// loadConfig reads the config file named by --config, or the default one
// under the XDG config directory when it exists.
func (c *CLI) loadConfig() error {
	if c.configFile != "" {
		c.config.SetConfigFile(c.configFile)
		if err := c.config.ReadInConfig(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", c.configFile)
		}
		c.Logger.Debug("Loaded config", "file", c.configFile)
		return nil
	}

	dir, err := configDir()
	if err != nil {
		return nil
	}
	c.config.SetConfigName("config")
	c.config.SetConfigType("yaml")
	c.config.AddConfigPath(dir)

	if err := c.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "read config")
	}
	c.Logger.Debug("Loaded config", "file", c.config.ConfigFileUsed())
	return nil
}

// bindFlag makes flag the highest-precedence source of key.
func (c *CLI) bindFlag(key string, flag *pflag.Flag) {
	if err := c.config.BindPFlag(key, flag); err != nil {
		panic(err) // flag is always registered before binding
	}
}

// inputPath returns the registry file to read: the positional argument if
// given, else the configured input.
func (c *CLI) inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.config.GetString(keyInput)
}
