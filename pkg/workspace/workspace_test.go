package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mydot/pkg/config"
	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/vcs/vcstest"
)

func testOptions(t *testing.T) (Options, *vcstest.Backend) {
	t.Helper()
	home := t.TempDir()
	backend := vcstest.NewBackend()
	return Options{
		Root:    filepath.Join(home, ".dotfiles"),
		Host:    "box1",
		Home:    home,
		FS:      filesystem.NewOS(),
		Backend: backend,
	}, backend
}

func TestOpen_MissingRoot(t *testing.T) {
	opts, _ := testOptions(t)

	_, err := Open(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryMissing))
	assert.Contains(t, err.Error(), "mydot init")
}

func TestOpen_RootIsFile(t *testing.T) {
	opts, _ := testOptions(t)
	require.NoError(t, os.WriteFile(opts.Root, []byte("x"), 0644))

	_, err := Open(context.Background(), opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryMissing))
}

func TestOpen_NotARepository(t *testing.T) {
	opts, _ := testOptions(t)
	require.NoError(t, os.MkdirAll(opts.Root, 0755))

	_, err := Open(context.Background(), opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRepository))
}

func TestOpen_CreatesConfig(t *testing.T) {
	ctx := context.Background()
	opts, backend := testOptions(t)
	require.NoError(t, os.MkdirAll(opts.Root, 0755))
	fake := vcstest.NewFake(opts.Root)
	backend.Repos[opts.Root] = fake

	ws, err := Open(ctx, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"box1"}, ws.Config.Hosts)
	assert.Equal(t, []string{"mydot: adding config.yaml"}, fake.Messages)
	assert.True(t, fake.Tracked["config.yaml"])

	cfg, exists, err := config.LoadRepoConfig(ws.FS, ws.Paths.ConfigPath())
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"box1"}, cfg.Hosts)

	// second open is a no-op
	_, err = Open(ctx, opts)
	require.NoError(t, err)
	assert.Len(t, fake.Messages, 1)
}

func TestOpen_RegistersNewHost(t *testing.T) {
	ctx := context.Background()
	opts, backend := testOptions(t)
	require.NoError(t, os.MkdirAll(opts.Root, 0755))
	fake := vcstest.NewFake(opts.Root)
	backend.Repos[opts.Root] = fake

	existing := config.NewRepoConfig()
	existing.AddHost("laptop")
	require.NoError(t, existing.Save(filesystem.NewOS(), filepath.Join(opts.Root, "config.yaml")))

	ws, err := Open(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"laptop", "box1"}, ws.Config.Hosts)
	assert.Equal(t, []string{"mydot: registering host box1"}, fake.Messages)
}

func TestOpen_ReadOnly(t *testing.T) {
	opts, backend := testOptions(t)
	require.NoError(t, os.MkdirAll(opts.Root, 0755))
	fake := vcstest.NewFake(opts.Root)
	backend.Repos[opts.Root] = fake
	opts.ReadOnly = true

	ws, err := Open(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, ws.Config.HasHost("box1"))
	assert.Empty(t, fake.Messages)
	_, err = os.Stat(filepath.Join(opts.Root, "config.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorkspace_Upstream(t *testing.T) {
	ctx := context.Background()
	opts, backend := testOptions(t)
	require.NoError(t, os.MkdirAll(opts.Root, 0755))
	fake := vcstest.NewFake(opts.Root)
	fake.Branch = "trunk"
	backend.Repos[opts.Root] = fake

	ws, err := Open(ctx, opts)
	require.NoError(t, err)

	pair, err := ws.Upstream(ctx)
	require.NoError(t, err)
	assert.Equal(t, "trunk", pair.Local)
	assert.Equal(t, "origin/trunk", pair.Upstream)

	ws.Config.Remote = "upstream"
	ws.Config.Branch = "main"
	pair, err = ws.Upstream(ctx)
	require.NoError(t, err)
	assert.Equal(t, "upstream/main", pair.Upstream)
}

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("checks out preferred branch", func(t *testing.T) {
		opts, backend := testOptions(t)
		backend.Seed = func(f *vcstest.Fake) {
			f.RemoteBranchOf["origin"] = []string{"dev", "main"}
		}

		ws, err := Init(ctx, InitOptions{Options: opts, URL: "git@example.com:u/dots.git", Branch: "main"})
		require.NoError(t, err)

		fake := backend.Repos[opts.Root]
		assert.Equal(t, "main", fake.Branch)
		assert.Equal(t, []string{"AddRemote", "Fetch", "CheckoutTracking", "Stage", "Commit"}, fake.Calls)
		assert.Equal(t, "git@example.com:u/dots.git", fake.RemoteList[0].URL)
		assert.True(t, ws.Config.HasHost("box1"))
	})

	t.Run("falls back to first branch", func(t *testing.T) {
		opts, backend := testOptions(t)
		backend.Seed = func(f *vcstest.Fake) {
			f.RemoteBranchOf["origin"] = []string{"trunk"}
		}

		_, err := Init(ctx, InitOptions{Options: opts, URL: "/srv/dots.git", Branch: "main"})
		require.NoError(t, err)
		assert.Equal(t, "trunk", backend.Repos[opts.Root].Branch)
	})

	t.Run("empty remote", func(t *testing.T) {
		opts, backend := testOptions(t)

		_, err := Init(ctx, InitOptions{Options: opts, URL: "/srv/dots.git"})
		require.NoError(t, err)
		assert.NotContains(t, backend.Repos[opts.Root].Calls, "CheckoutTracking")
	})

	t.Run("root exists", func(t *testing.T) {
		opts, backend := testOptions(t)
		require.NoError(t, os.MkdirAll(opts.Root, 0755))

		_, err := Init(ctx, InitOptions{Options: opts, URL: "/srv/dots.git"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
		assert.Empty(t, backend.Repos)
	})

	t.Run("missing url", func(t *testing.T) {
		opts, _ := testOptions(t)
		_, err := Init(ctx, InitOptions{Options: opts})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestChooseBranch(t *testing.T) {
	assert.Equal(t, "main", chooseBranch([]string{"dev", "main"}, "main"))
	assert.Equal(t, "dev", chooseBranch([]string{"dev", "main"}, ""))
	assert.Equal(t, "", chooseBranch(nil, "main"))
}
