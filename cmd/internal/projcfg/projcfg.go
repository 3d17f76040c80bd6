// Package projcfg loads the bwstudio.toml project file from the working directory
// or one of its parents.
package projcfg

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

const configFile = "bwstudio.toml"

// DefaultPrefix is the CDK context key prefix used when the project file sets none.
const DefaultPrefix = "bwstudio"

type Config struct {
	Root   string       `toml:"-"`
	Cdk    CdkConfig    `toml:"cdk"`
	Studio StudioConfig `toml:"studio"`
}

type CdkConfig struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix"`
}

// StudioConfig holds defaults for commands that render studio artifacts locally.
type StudioConfig struct {
	AppRoot string `toml:"app_root"`
	EnvFile string `toml:"env_file"`
}

func (c *Config) CdkDir() string {
	return filepath.Join(c.Root, c.Cdk.Dir)
}

// ContextPrefix returns the prefix of the CDK context keys, including the dash.
func (c *Config) ContextPrefix() string {
	return c.Cdk.Prefix + "-"
}

// Load finds and parses the project file, starting in the working directory.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFrom(wd)
}

// LoadFrom finds and parses the project file, starting in dir.
func LoadFrom(dir string) (*Config, error) {
	root, err := findRoot(dir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(root, configFile), &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", configFile)
	}

	cfg.Root = root
	if cfg.Cdk.Prefix == "" {
		cfg.Cdk.Prefix = DefaultPrefix
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", configFile)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Cdk.Dir == "" {
		return errors.New("cdk.dir is required")
	}
	if filepath.IsAbs(c.Cdk.Dir) {
		return errors.Newf("cdk.dir must be relative, got %q", c.Cdk.Dir)
	}
	if filepath.IsAbs(c.Studio.AppRoot) {
		return errors.Newf("studio.app_root must be relative, got %q", c.Studio.AppRoot)
	}
	return nil
}

func findRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, configFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf("could not find %s in any parent directory", configFile)
		}
		dir = parent
	}
}
