package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	kinerr "github.com/mreyes/kintree/pkg/errors"
	"github.com/mreyes/kintree/pkg/tree"
)

// configFile is the default config file looked up in the working directory.
const configFile = "kintree.toml"

// Config holds project-level defaults read from kintree.toml. Flags
// always take precedence over config values, which take precedence
// over built-in defaults.
type Config struct {
	Title   string       `toml:"title"`
	Root    int          `toml:"root"`
	Legend  bool         `toml:"legend"`
	Sheet   string       `toml:"sheet"`
	Formats []string     `toml:"formats"`
	Addr    string       `toml:"addr"`
	Colors  ColorsConfig `toml:"colors"`
}

// ColorsConfig overrides the node and spouse-edge colors.
type ColorsConfig struct {
	Male   string `toml:"male"`
	Female string `toml:"female"`
	Spouse string `toml:"spouse"`
}

// defaultConfig returns the built-in defaults used when no config file
// is present.
func defaultConfig() Config {
	return Config{
		Title:   "Family Descendant Tree",
		Legend:  true,
		Formats: []string{"svg"},
		Addr:    "127.0.0.1:8571",
	}
}

// loadConfig reads the config file at path. An empty path falls back
// to kintree.toml in the working directory; a missing default file is
// not an error and yields the built-in defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = configFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, kinerr.Wrap(kinerr.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, kinerr.Wrap(kinerr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// treeOptions converts the color overrides into tree options, filling
// unset fields with the defaults.
func (c Config) treeOptions() tree.Options {
	opts := tree.DefaultOptions()
	if c.Colors.Male != "" {
		opts.MaleColor = c.Colors.Male
	}
	if c.Colors.Female != "" {
		opts.FemaleColor = c.Colors.Female
	}
	if c.Colors.Spouse != "" {
		opts.SpouseEdgeColor = c.Colors.Spouse
	}
	return opts
}
