package config

import (
	"io/fs"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
)

// DefaultRemote is the upstream remote name used when none is configured
const DefaultRemote = "origin"

// RepoConfig is the repository configuration stored in config.yaml
type RepoConfig struct {
	// Hosts lists every host identity that has used the repository
	Hosts []string `koanf:"hosts" yaml:"hosts"`

	// Remote is the upstream remote name
	Remote string `koanf:"remote" yaml:"remote"`

	// Branch is the upstream branch. Empty means the current branch.
	Branch string `koanf:"branch" yaml:"branch,omitempty"`
}

// NewRepoConfig returns a config with defaults applied
func NewRepoConfig() *RepoConfig {
	return &RepoConfig{Hosts: []string{}, Remote: DefaultRemote}
}

func repoDefaults() map[string]interface{} {
	return map[string]interface{}{
		"hosts":  []string{},
		"remote": DefaultRemote,
		"branch": "",
	}
}

// LoadRepoConfig reads config.yaml. The second return value is false when the
// file does not exist, in which case the defaults are returned.
func LoadRepoConfig(fsys filesystem.FS, path string) (*RepoConfig, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewRepoConfig(), false, nil
		}
		return nil, false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(repoDefaults(), "."), nil); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrConfigLoad, "failed to load repository defaults")
	}
	if err := k.Load(bytesProvider(data), yaml.Parser()); err != nil {
		return nil, true, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	var cfg RepoConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, true, errors.Wrapf(err, errors.ErrConfigParse, "invalid repository config %s", path)
	}
	if cfg.Hosts == nil {
		cfg.Hosts = []string{}
	}
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	return &cfg, true, nil
}

// Save writes the config as YAML
func (c *RepoConfig) Save(fsys filesystem.FS, path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to encode repository config")
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", path)
	}
	return nil
}

// HasHost reports whether host is registered
func (c *RepoConfig) HasHost(host string) bool {
	for _, h := range c.Hosts {
		if h == host {
			return true
		}
	}
	return false
}

// AddHost registers host and reports whether the list changed
func (c *RepoConfig) AddHost(host string) bool {
	if c.HasHost(host) {
		return false
	}
	c.Hosts = append(c.Hosts, host)
	return true
}
