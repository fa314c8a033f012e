package environment

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/executor/executormock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _shellOutput = "PATH=/nix/store/bin:/usr/bin\x00CARGO_HOME=/home/u/.cargo\x00HOME=/home/u\x00"

func newTestProvider(t *testing.T, yaml string, executorMock *executormock.MockExecutor, stats tally.Scope) *provider {
	cfg, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)

	p, err := New(Params{
		Config:   cfg,
		Executor: executorMock,
		FS:       fs.New(),
		Logger:   zap.NewNop().Sugar(),
		Stats:    stats,
	})
	require.NoError(t, err)

	impl := p.(*provider)
	impl.environ = func() []string { return []string{"PATH=/usr/bin", "USER=u"} }
	impl.shell = func() string { return "/bin/zsh" }
	return impl
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := newTestProvider(t, "{}", nil, tally.NoopScope)
		assert.Equal(t, entity.DefaultEnvironmentConfig(), p.cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		p := newTestProvider(t, `
environment:
  captureTimeout: 1s
  maxConcurrentCaptures: 0
`, nil, tally.NoopScope)
		assert.Equal(t, time.Second, p.cfg.CaptureTimeout)
		assert.Equal(t, 3*time.Second, p.cfg.ProviderTimeout)
		assert.Equal(t, 1, p.cfg.MaxConcurrentCaptures)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader("environment:\n  captureTimeout: [1]\n")))
		require.NoError(t, err)
		_, err = New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), Stats: tally.NoopScope})
		assert.Error(t, err)
	})
}

func TestCapture(t *testing.T) {
	ctx := context.Background()

	t.Run("caches successful captures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		scope := tally.NewTestScope("testing", make(map[string]string, 0))
		p := newTestProvider(t, "{}", executorMock, scope)
		dir := t.TempDir()

		executorMock.EXPECT().Run(gomock.Any()).Return(_shellOutput, "", 0, nil).Times(1)

		first, err := p.Capture(ctx, dir)
		require.NoError(t, err)
		second, err := p.Capture(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, entity.EnvironmentOriginWorktreeShell, first.Origin)
		assert.Equal(t, "/nix/store/bin:/usr/bin", first.Vars["PATH"])
		assert.Equal(t, "u", first.Vars["USER"])

		counters := scope.Snapshot().Counters()
		assert.Equal(t, int64(1), counters["testing.environment.cache_miss+"].Value())
		assert.Equal(t, int64(1), counters["testing.environment.cache_hit+"].Value())
	})

	t.Run("probe enters the directory with the user's shell", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		p := newTestProvider(t, "{}", executorMock, tally.NoopScope)
		dir := t.TempDir()
		canonical, err := fs.New().Canonical(dir)
		require.NoError(t, err)

		executorMock.EXPECT().Run(gomock.Any()).DoAndReturn(func(cmd *exec.Cmd) (string, string, int, error) {
			assert.Equal(t, "/bin/zsh", cmd.Args[0])
			assert.Equal(t, canonical, cmd.Dir)
			return _shellOutput, "", 0, nil
		})

		_, err = p.Capture(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{canonical}, p.CachedDirectories())
	})

	t.Run("failures are cached until cleared", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		p := newTestProvider(t, "{}", executorMock, tally.NoopScope)
		dir := t.TempDir()

		executorMock.EXPECT().Run(gomock.Any()).Return("", "boom", 1, errors.New("exit status 1")).Times(1)
		_, err := p.Capture(ctx, dir)
		require.Error(t, err)
		_, err = p.Capture(ctx, dir)
		require.Error(t, err)

		p.ClearDirectoryCache(dir)
		assert.Empty(t, p.CachedDirectories())
		executorMock.EXPECT().Run(gomock.Any()).Return(_shellOutput, "", 0, nil).Times(1)
		_, err = p.Capture(ctx, dir)
		assert.NoError(t, err)
	})

	t.Run("empty output is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		p := newTestProvider(t, "{}", executorMock, tally.NoopScope)

		executorMock.EXPECT().Run(gomock.Any()).Return("", "", 0, nil)
		_, err := p.Capture(ctx, t.TempDir())
		assert.Error(t, err)
	})

	t.Run("concurrent misses share one probe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		p := newTestProvider(t, "{}", executorMock, tally.NoopScope)
		dir := t.TempDir()
		release := make(chan struct{})

		executorMock.EXPECT().Run(gomock.Any()).DoAndReturn(func(*exec.Cmd) (string, string, int, error) {
			<-release
			return _shellOutput, "", 0, nil
		}).Times(1)

		var wg sync.WaitGroup
		results := make([]entity.EnvironmentSnapshot, 4)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				snapshot, err := p.Capture(ctx, dir)
				assert.NoError(t, err)
				results[i] = snapshot
			}(i)
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, results[0], r)
		}
	})

	t.Run("cli environment wins", func(t *testing.T) {
		p := newTestProvider(t, `
environment:
  cliEnvironment:
    PATH: /cli/bin
    RUSTFLAGS: -Dwarnings
`, nil, tally.NoopScope)

		snapshot, err := p.Capture(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, entity.EnvironmentOriginCLI, snapshot.Origin)
		assert.Equal(t, "/cli/bin", snapshot.Vars["PATH"])
		assert.Equal(t, "u", snapshot.Vars["USER"])
	})
}

func TestGetEnvironment(t *testing.T) {
	ctx := context.Background()

	t.Run("timeout falls back to the process environment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		scope := tally.NewTestScope("testing", make(map[string]string, 0))
		p := newTestProvider(t, `
environment:
  captureTimeout: 200ms
  providerTimeout: 20ms
`, executorMock, scope)
		release := make(chan struct{})
		defer close(release)

		executorMock.EXPECT().Run(gomock.Any()).DoAndReturn(func(*exec.Cmd) (string, string, int, error) {
			<-release
			return "", "", -1, errors.New("killed")
		}).AnyTimes()

		start := time.Now()
		snapshot := p.GetEnvironment(ctx, t.TempDir())
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, entity.EnvironmentOriginProcess, snapshot.Origin)
		assert.NotEmpty(t, snapshot.Vars["PATH"])
		assert.Equal(t, int64(1), scope.Snapshot().Counters()["testing.environment.fallback+"].Value())
	})

	t.Run("failure falls back and PATH is always set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		p := newTestProvider(t, "{}", executorMock, tally.NoopScope)
		p.environ = func() []string { return []string{"USER=u"} }

		executorMock.EXPECT().Run(gomock.Any()).Return("", "no shell", 127, errors.New("exit status 127"))
		snapshot := p.GetEnvironment(ctx, t.TempDir())
		assert.Equal(t, _defaultPath, snapshot.Vars["PATH"])
	})

	t.Run("overrides apply last", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		p := newTestProvider(t, "{}", executorMock, tally.NoopScope)

		executorMock.EXPECT().Run(gomock.Any()).Return(_shellOutput, "", 0, nil)
		snapshot := p.GetEnvironmentWithOverrides(ctx, t.TempDir(), map[string]string{"CARGO_HOME": "/override"})
		assert.Equal(t, "/override", snapshot.Vars["CARGO_HOME"])
		assert.Equal(t, entity.EnvironmentOriginWorktreeShell, snapshot.Origin)
	})
}

func TestOverlay(t *testing.T) {
	p := newTestProvider(t, "{}", nil, tally.NoopScope)
	overlay := p.Overlay(entity.EnvironmentSnapshot{Vars: map[string]string{
		"PATH":       "/nix/bin",
		"CARGO_HOME": "/c",
		"NIX_PATH":   "nixpkgs=x",
		"HOME":       "/home/u",
		"DISPLAY":    ":0",
		"LANG":       "C",
		"RANDOM_VAR": "1",
	}})
	assert.Equal(t, map[string]string{
		"PATH":       "/nix/bin",
		"CARGO_HOME": "/c",
		"NIX_PATH":   "nixpkgs=x",
	}, overlay)
}

func TestClearAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	executorMock := executormock.NewMockExecutor(ctrl)
	p := newTestProvider(t, "{}", executorMock, tally.NoopScope)

	executorMock.EXPECT().Run(gomock.Any()).Return(_shellOutput, "", 0, nil).Times(2)
	_, err := p.Capture(context.Background(), t.TempDir())
	require.NoError(t, err)
	_, err = p.Capture(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Len(t, p.CachedDirectories(), 2)

	p.ClearAll()
	assert.Empty(t, p.CachedDirectories())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
