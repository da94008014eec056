package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, "WARNING", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.False(t, cfg.Sync.CreateDirs)
	assert.Equal(t, "mydot", cfg.Commit.Prefix)
}

func TestLoadAppConfig_Layers(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
path = "~/dots"

[log]
level = "DEBUG"

[sync]
create_dirs = true
`), 0644))

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "~/dots", cfg.Path)
		assert.Equal(t, "DEBUG", cfg.Log.Level)
		assert.True(t, cfg.Sync.CreateDirs)
		assert.Equal(t, "auto", cfg.Output.Format)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("MYDOT_LOG_LEVEL", "ERROR")
		t.Setenv("MYDOT_SYNC_CREATE_DIRS", "false")
		t.Setenv("MYDOT_OUTPUT_FORMAT", "JSON")

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "ERROR", cfg.Log.Level)
		assert.False(t, cfg.Sync.CreateDirs)
		assert.Equal(t, "json", cfg.Output.Format)
	})
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "WARNING", cfg.Log.Level)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("bad toml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[log\nlevel = "), 0644))
		_, err := LoadAppConfig(path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("bad format", func(t *testing.T) {
		t.Setenv("MYDOT_OUTPUT_FORMAT", "xml")
		_, err := LoadAppConfig("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "path", envKey("MYDOT_PATH"))
	assert.Equal(t, "log.level", envKey("MYDOT_LOG_LEVEL"))
	assert.Equal(t, "sync.create_dirs", envKey("MYDOT_SYNC_CREATE_DIRS"))
}

func TestCommitMessage(t *testing.T) {
	cfg := &AppConfig{}
	assert.Equal(t, "mydot: adding .vimrc", cfg.CommitMessage("adding", ".vimrc"))

	cfg.Commit.Prefix = "dots"
	assert.Equal(t, "dots: removed .vimrc", cfg.CommitMessage("removed", ".vimrc"))
}

func TestGenerateConfigContent(t *testing.T) {
	content, err := GenerateConfigContent()
	require.NoError(t, err)

	assert.Contains(t, content, "[log]")
	assert.Contains(t, content, "# level = 'WARNING'")
	assert.Contains(t, content, "# create_dirs = false")
	assert.NotContains(t, content, "\nlevel =")
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\n[sync]\ncreate_dirs = true\n"
	want := "# header\n\n[sync]\n# create_dirs = true\n"
	assert.Equal(t, want, commentOutConfigValues(in))
}
