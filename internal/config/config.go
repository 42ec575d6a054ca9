package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/pkg/fileutil"
)

// EnvPrefix is the prefix of environment overrides (MUSH_AGENTS, ...).
const EnvPrefix = "MUSH"

// Config is the merged configuration of one project.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Agents selects target tools explicitly, bypassing detection.
	Agents []string `mapstructure:"agents" yaml:"agents,omitempty"`

	// MinVersion is the oldest mush release allowed to sync the project.
	MinVersion string `mapstructure:"min_version" yaml:"min_version,omitempty"`

	// Gitignore controls whether generated paths are added to .gitignore.
	Gitignore bool `mapstructure:"gitignore" yaml:"gitignore"`

	// Paths are extra targets written in addition to each tool's own files.
	Paths Paths `mapstructure:"paths" yaml:"paths,omitempty"`
}

// Paths lists custom output targets, relative to the project root or absolute.
type Paths struct {
	Guidelines []string `mapstructure:"guidelines" yaml:"guidelines,omitempty"`
	Skills     []string `mapstructure:"skills" yaml:"skills,omitempty"`
	MCP        []string `mapstructure:"mcp" yaml:"mcp,omitempty"`
}

// Empty reports whether no custom path is configured.
func (p Paths) Empty() bool {
	return len(p.Guidelines) == 0 && len(p.Skills) == 0 && len(p.MCP) == 0
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Version:   1,
		Gitignore: true,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("gitignore", d.Gitignore)
	v.SetDefault("agents", []string{})
	v.SetDefault("min_version", "")
	v.SetDefault("paths.guidelines", []string{})
	v.SetDefault("paths.skills", []string{})
	v.SetDefault("paths.mcp", []string{})
	return v
}

// Load merges the user defaults and the project file of layout. Missing
// files are skipped; a file that exists but cannot be parsed is an error.
func Load(layout paths.Layout) (*Config, error) {
	return LoadFiles(paths.UserConfig(), layout.Config())
}

// LoadFiles merges the given YAML files in order over the defaults.
// Empty names and missing files are skipped.
func LoadFiles(files ...string) (*Config, error) {
	v := newViper()

	for _, f := range files {
		if f == "" || !fileutil.Exists(f) {
			continue
		}
		v.SetConfigFile(f)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "reading %s: %v", f, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unmarshaling config: %v", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "saving config")
	}
	return nil
}
