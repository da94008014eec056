package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/mydot/pkg/errors"
)

const (
	// AppDirName is the directory name under XDG base directories
	AppDirName = "mydot"

	// AppConfigFileName is the user config file name
	AppConfigFileName = "config.toml"

	// EnvPrefix is the prefix of environment overrides
	EnvPrefix = "MYDOT_"
)

// Output formats accepted by output.format and --format
var OutputFormats = []string{"auto", "term", "text", "json"}

// AppConfig is the application-level configuration
type AppConfig struct {
	Path   string       `koanf:"path" toml:"path"`
	Log    LogConfig    `koanf:"log" toml:"log"`
	Output OutputConfig `koanf:"output" toml:"output"`
	Sync   SyncConfig   `koanf:"sync" toml:"sync"`
	Commit CommitConfig `koanf:"commit" toml:"commit"`
}

type LogConfig struct {
	Level string `koanf:"level" toml:"level"`
}

type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
}

type SyncConfig struct {
	CreateDirs bool `koanf:"create_dirs" toml:"create_dirs"`
}

type CommitConfig struct {
	Prefix string `koanf:"prefix" toml:"prefix"`
}

// AppConfigPath returns $XDG_CONFIG_HOME/mydot/config.toml
func AppConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, AppConfigFileName)
}

// LoadDefaults returns the embedded defaults only
func LoadDefaults() (*AppConfig, error) {
	k := koanf.New(".")
	if err := k.Load(bytesProvider(defaultsTOML), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return unmarshalApp(k)
}

// LoadAppConfig loads the layered application config. A missing file at
// path is not an error; an empty path skips the file layer.
func LoadAppConfig(path string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(bytesProvider(defaultsTOML), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	return unmarshalApp(k)
}

// envKey maps MYDOT_SYNC_CREATE_DIRS to sync.create_dirs. Only the first
// underscore separates a section from its key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func unmarshalApp(k *koanf.Koanf) (*AppConfig, error) {
	var cfg AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values
func (c *AppConfig) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = "auto"
	}
	for _, f := range OutputFormats {
		if c.Output.Format == f {
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigParse, "invalid output format %q (expected one of %s)",
		c.Output.Format, strings.Join(OutputFormats, ", "))
}

// CommitMessage builds the message for an automatic commit
func (c *AppConfig) CommitMessage(action, path string) string {
	prefix := c.Commit.Prefix
	if prefix == "" {
		prefix = AppDirName
	}
	return prefix + ": " + action + " " + path
}
