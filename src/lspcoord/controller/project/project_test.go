package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/factory"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/clock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/repository/servers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

const _noWatch = `
projectLsp:
  watchMarkers: false
`

type fakeClock struct {
	now    time.Time
	ticker *fakeTicker

	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

func (t *fakeTimer) fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	t.mu.Unlock()
	t.f()
}

type fakeTicker struct {
	c chan time.Time
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }

func (f *fakeTicker) Stop() {}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(time.Duration) {}

func (f *fakeClock) NewTicker(time.Duration) clock.Ticker { return f.ticker }

func (f *fakeClock) AfterFunc(_ time.Duration, fn func()) clock.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{f: fn}
	f.timers = append(f.timers, t)
	return t
}

// pending returns the timers that were neither stopped nor fired.
func (f *fakeClock) pending() []*fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeTimer
	for _, t := range f.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
		t.mu.Unlock()
	}
	return out
}

type fakeBridge struct {
	mu    sync.Mutex
	known map[uuid.UUID]bool
}

func (b *fakeBridge) HasServer(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.known[id]
	return ok
}

func (b *fakeBridge) IsServerReady(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.known[id]
}

func newTestManager(t *testing.T, yaml string, clk clock.Clock, stats tally.Scope) *manager {
	cfg, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	if clk == nil {
		clk = clock.New()
	}
	if stats == nil {
		stats = tally.NoopScope
	}

	m, err := New(Params{
		Config:  cfg,
		FS:      fs.New(),
		Clock:   clk,
		Servers: servers.New(tally.NoopScope),
		Logger:  zap.NewNop().Sugar(),
		Stats:   stats,
	})
	require.NoError(t, err)
	return m.(*manager)
}

func writeFiles(t *testing.T, root string, files ...string) {
	for _, f := range files {
		path := filepath.Join(root, f)
		if strings.HasSuffix(f, "/") {
			require.NoError(t, os.MkdirAll(path, os.ModePerm))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
		require.NoError(t, os.WriteFile(path, []byte{}, 0o644))
	}
}

func receive(t *testing.T, ch <-chan entity.ProjectEvent) entity.ProjectEvent {
	select {
	case e, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return e
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for event")
	}
	return nil
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := newTestManager(t, "{}", nil, nil)
		assert.Equal(t, entity.DefaultProjectLspConfig(), m.cfg)
	})

	t.Run("invalid interval", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader("projectLsp:\n  healthCheckInterval: 0s\n")))
		require.NoError(t, err)
		_, err = New(Params{Config: cfg, FS: fs.New(), Logger: zap.NewNop().Sugar(), Stats: tally.NoopScope})
		kind, ok := errors.KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, errors.KindConfiguration, kind)
	})

	t.Run("registers lifecycle hooks", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader(_noWatch)))
		require.NoError(t, err)
		lc := fxtest.NewLifecycle(t)
		_, err = New(Params{
			Config:    cfg,
			FS:        fs.New(),
			Clock:     clock.New(),
			Servers:   servers.New(tally.NoopScope),
			Logger:    zap.NewNop().Sugar(),
			Stats:     tally.NoopScope,
			Lifecycle: lc,
		})
		require.NoError(t, err)
		lc.RequireStart()
		lc.RequireStop()
	})
}

func TestDetectProject(t *testing.T) {
	tests := []struct {
		name        string
		files       []string
		wantType    entity.ProjectType
		wantServers []string
	}{
		{name: "rust", files: []string{"Cargo.toml"}, wantType: entity.RustProject, wantServers: []string{"rust-analyzer"}},
		{name: "typescript config", files: []string{"package.json", "tsconfig.json"}, wantType: entity.TypeScriptProject, wantServers: []string{"typescript-language-server"}},
		{name: "typescript sources", files: []string{"package.json", "src/index.tsx"}, wantType: entity.TypeScriptProject, wantServers: []string{"typescript-language-server"}},
		{name: "javascript", files: []string{"package.json", "src/index.js"}, wantType: entity.JavaScriptProject, wantServers: []string{"typescript-language-server"}},
		{name: "python", files: []string{"requirements.txt"}, wantType: entity.PythonProject, wantServers: []string{"pyright"}},
		{name: "go", files: []string{"go.mod"}, wantType: entity.GoProject, wantServers: []string{"gopls"}},
		{name: "cpp", files: []string{"Makefile", "src/"}, wantType: entity.CppProject, wantServers: []string{"clangd"}},
		{name: "c", files: []string{"CMakeLists.txt"}, wantType: entity.CProject, wantServers: []string{"clangd"}},
		{name: "rust wins over node", files: []string{"Cargo.toml", "package.json"}, wantType: entity.RustProject, wantServers: []string{"rust-analyzer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, _noWatch, nil, nil)
			root := t.TempDir()
			writeFiles(t, root, tt.files...)

			info, err := m.DetectProject(context.Background(), root)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, info.ProjectType)
			assert.Equal(t, tt.wantServers, info.LanguageServers)

			stored, ok := m.ProjectInfo(context.Background(), root+"/")
			assert.True(t, ok)
			assert.Equal(t, info, stored)
		})
	}

	t.Run("unknown project is a detection error and is not stored", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		root := t.TempDir()

		_, err := m.DetectProject(context.Background(), root)
		var detection *errors.DetectionError
		require.ErrorAs(t, err, &detection)
		assert.Equal(t, filepath.Clean(root), detection.WorkspaceRoot)
		assert.True(t, errors.IsRecoverable(err))

		_, ok := m.ProjectInfo(context.Background(), root)
		assert.False(t, ok)
		assert.Empty(t, m.events)
	})

	t.Run("missing directory", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		_, err := m.DetectProject(context.Background(), filepath.Join(t.TempDir(), "missing"))
		var detection *errors.DetectionError
		assert.ErrorAs(t, err, &detection)
	})

	t.Run("only the given directory is scanned", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		parent := t.TempDir()
		writeFiles(t, parent, "Cargo.toml", "child/")

		_, err := m.DetectProject(context.Background(), filepath.Join(parent, "child"))
		assert.Error(t, err)
	})

	t.Run("publishes when proactive startup is enabled", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "go.mod")

		_, err := m.DetectProject(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, m.events, 1)
		event := (<-m.events).(entity.ProjectDetected)
		assert.Equal(t, entity.GoProject, event.ProjectType)
		assert.Equal(t, []string{"gopls"}, event.Servers)
	})

	t.Run("does not publish when proactive startup is disabled", func(t *testing.T) {
		m := newTestManager(t, "projectLsp:\n  enableProactiveStartup: false\n  watchMarkers: false\n", nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "go.mod")

		_, err := m.DetectProject(context.Background(), root)
		require.NoError(t, err)
		assert.Empty(t, m.events)
	})
}

func TestCustomMarkers(t *testing.T) {
	const yaml = `
projectLsp:
  watchMarkers: false
  customMarkers:
    bazel-go:
      markers: [WORKSPACE, BUILD.bazel]
      languageServer: bazel-gopls
      priority: 5
    zig:
      markers: [build.zig]
      languageServer: zls
      priority: 1
`

	t.Run("highest priority match wins over builtin markers", func(t *testing.T) {
		m := newTestManager(t, yaml, nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "WORKSPACE", "build.zig", "Cargo.toml")

		info, err := m.DetectProject(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, entity.GoProject, info.ProjectType)
		assert.Equal(t, []string{"bazel-gopls"}, info.LanguageServers)
	})

	t.Run("unmapped names become other projects", func(t *testing.T) {
		m := newTestManager(t, yaml, nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "build.zig")

		info, err := m.DetectProject(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, entity.OtherProject("zig"), info.ProjectType)
		assert.Equal(t, "zig", info.ProjectType.PrimaryLanguageID())
		assert.Equal(t, []string{"zls"}, info.LanguageServers)
	})

	t.Run("local config file overrides", func(t *testing.T) {
		m := newTestManager(t, yaml, nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "WORKSPACE", "flake.nix")
		require.NoError(t, os.WriteFile(filepath.Join(root, LocalConfigFile), []byte(`
customMarkers:
  nix-python:
    markers: [flake.nix]
    languageServer: pylsp
    priority: 10
`), 0o644))

		info, err := m.DetectProject(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, entity.PythonProject, info.ProjectType)
		assert.Equal(t, []string{"pylsp"}, info.LanguageServers)
	})

	t.Run("invalid local config", func(t *testing.T) {
		m := newTestManager(t, yaml, nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "go.mod")
		require.NoError(t, os.WriteFile(filepath.Join(root, LocalConfigFile), []byte("customMarkers: [nope"), 0o644))

		_, err := m.DetectProject(context.Background(), root)
		var detection *errors.DetectionError
		assert.ErrorAs(t, err, &detection)
	})
}

func TestCustomProjectType(t *testing.T) {
	tests := map[string]entity.ProjectType{
		"my-rust-app":  entity.RustProject,
		"frontend-ts":  entity.TypeScriptProject,
		"node-service": entity.JavaScriptProject,
		"Python Tools": entity.PythonProject,
		"golang":       entity.GoProject,
		"c++ engine":   entity.CppProject,
		"embedded-c":   entity.CProject,
		"elm":          entity.OtherProject("elm"),
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, customProjectType(name))
		})
	}
}

func TestBuiltinServers(t *testing.T) {
	assert.Equal(t, []string{"clangd", "rust-analyzer"}, builtinServers(entity.MixedProject(entity.RustProject, entity.CProject, entity.CppProject)))
	assert.Empty(t, builtinServers(entity.OtherProject("zig")))
	assert.Empty(t, builtinServers(entity.UnknownProject))
}

func TestEventProcessing(t *testing.T) {
	ctx := context.Background()

	t.Run("detected projects request one startup per server", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		m.SetBridge(&fakeBridge{})
		events := m.Subscribe()
		require.NoError(t, m.Start(ctx))
		defer m.Stop(ctx)

		m.Publish(entity.ProjectDetected{
			WorkspaceRoot: "/a",
			ProjectType:   entity.MixedProject(entity.RustProject, entity.CProject),
			Servers:       []string{"clangd", "rust-analyzer"},
		})

		assert.IsType(t, entity.ProjectDetected{}, receive(t, events))
		first := receive(t, events).(entity.ServerStartupRequested)
		second := receive(t, events).(entity.ServerStartupRequested)
		assert.Equal(t, entity.ServerStartupRequested{WorkspaceRoot: "/a", ServerName: "clangd", LanguageID: "unknown"}, first)
		assert.Equal(t, "rust-analyzer", second.ServerName)
	})

	t.Run("no startup without a bridge", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		events := m.Subscribe()
		require.NoError(t, m.Start(ctx))
		defer m.Stop(ctx)

		m.Publish(entity.ProjectDetected{WorkspaceRoot: "/a", ProjectType: entity.GoProject, Servers: []string{"gopls"}})
		m.Publish(entity.ProjectCleanupRequested{WorkspaceRoot: "/a"})

		assert.IsType(t, entity.ProjectDetected{}, receive(t, events))
		assert.IsType(t, entity.ProjectCleanupRequested{}, receive(t, events))
		assert.False(t, m.HasBridge())
	})

	t.Run("no startup for the system root", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		m.SetBridge(&fakeBridge{})
		events := m.Subscribe()
		require.NoError(t, m.Start(ctx))
		defer m.Stop(ctx)

		m.Publish(entity.ProjectDetected{WorkspaceRoot: "/", ProjectType: entity.GoProject, Servers: []string{"gopls"}})
		m.Publish(entity.ProjectCleanupRequested{WorkspaceRoot: "/b"})

		assert.IsType(t, entity.ProjectDetected{}, receive(t, events))
		assert.Equal(t, entity.ProjectCleanupRequested{WorkspaceRoot: "/b"}, receive(t, events))
	})
}

func TestSubscribe(t *testing.T) {
	m := newTestManager(t, _noWatch, nil, nil)

	first := m.Subscribe()
	second := m.Subscribe()
	_, ok := <-first
	assert.False(t, ok, "previous subscription should be closed")

	require.NoError(t, m.Stop(context.Background()))
	_, ok = <-second
	assert.False(t, ok)
}

func TestPublishOverflow(t *testing.T) {
	scope := tally.NewTestScope("testing", make(map[string]string, 0))
	m := newTestManager(t, _noWatch, nil, scope)

	for i := 0; i < _eventBufferSize+1; i++ {
		m.Publish(entity.ProjectCleanupRequested{WorkspaceRoot: "/a"})
	}
	assert.Equal(t, int64(1), scope.Snapshot().Counters()["testing.events.dropped+"].Value())
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, _noWatch, nil, nil)

	a1 := factory.ManagedServer("/a/", "rust-analyzer")
	recorded, added, err := m.RecordServer(ctx, a1)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "/a", recorded.WorkspaceRoot)

	_, added, err = m.RecordServer(ctx, factory.ManagedServer("/a", "rust-analyzer"))
	require.NoError(t, err)
	assert.False(t, added)

	_, _, err = m.RecordServer(ctx, factory.ManagedServer("/a", "clangd"))
	require.NoError(t, err)
	assert.Len(t, m.ManagedServers(ctx, "/a"), 2)

	removed, err := m.RemoveServer(ctx, a1.ServerID)
	require.NoError(t, err)
	assert.Equal(t, a1.ServerID, removed.ServerID)
	assert.Equal(t, entity.ServerCleanupCompleted{WorkspaceRoot: "/a", ServerID: a1.ServerID}, <-m.events)

	_, err = m.RemoveServer(ctx, a1.ServerID)
	assert.Error(t, err)

	all := m.RemoveProject(ctx, "/a")
	assert.Len(t, all, 1)
	assert.IsType(t, entity.ServerCleanupCompleted{}, <-m.events)
	assert.Empty(t, m.ManagedServers(ctx, "/a"))
}

func TestHealthChecks(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clk := &fakeClock{now: now, ticker: &fakeTicker{c: make(chan time.Time)}}
	scope := tally.NewTestScope("testing", make(map[string]string, 0))
	m := newTestManager(t, _noWatch, clk, scope)

	healthy := factory.ManagedServer("/a", "gopls")
	warming := factory.ManagedServer("/a", "clangd")
	warming.StartedAt = now.Add(-time.Second)
	gone := factory.ManagedServer("/b", "pyright")
	for _, s := range []entity.ManagedServer{healthy, warming, gone} {
		_, _, err := m.RecordServer(ctx, s)
		require.NoError(t, err)
	}
	m.SetBridge(&fakeBridge{known: map[uuid.UUID]bool{healthy.ServerID: true, warming.ServerID: true}})

	events := m.Subscribe()
	require.NoError(t, m.Start(ctx))
	clk.ticker.c <- now

	got := map[uuid.UUID]entity.HealthStatus{}
	for i := 0; i < 3; i++ {
		e := receive(t, events).(entity.HealthCheckCompleted)
		got[e.ServerID] = e.Status
	}
	require.NoError(t, m.Stop(ctx))

	assert.Equal(t, entity.HealthHealthy, got[healthy.ServerID])
	assert.Equal(t, entity.HealthUnresponsive, got[warming.ServerID])
	assert.Equal(t, entity.HealthFailed, got[gone.ServerID])
	assert.Equal(t, int64(2), scope.Snapshot().Counters()["testing.health.unresponsive+"].Value())
}

func TestStop(t *testing.T) {
	ctx := context.Background()

	t.Run("without start", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		assert.NoError(t, m.Stop(ctx))
		assert.NoError(t, m.Stop(ctx))
		assert.NoError(t, m.Start(ctx), "start after stop is a no-op")
	})

	t.Run("reports managed servers as cleaned up", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		s := factory.ManagedServer("/a", "gopls")
		_, _, err := m.RecordServer(ctx, s)
		require.NoError(t, err)
		events := m.Subscribe()

		require.NoError(t, m.Start(ctx))
		require.NoError(t, m.Start(ctx))
		require.NoError(t, m.Stop(ctx))

		assert.Equal(t, entity.ServerCleanupCompleted{WorkspaceRoot: "/a", ServerID: s.ServerID}, receive(t, events))
		_, ok := <-events
		assert.False(t, ok)
	})
}

func TestMarkerWatcher(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, "{}", nil, nil)
	root := t.TempDir()

	events := m.Subscribe()
	require.NoError(t, m.Start(ctx))
	defer m.Stop(ctx)

	_, err := m.DetectProject(ctx, root)
	require.Error(t, err)

	writeFiles(t, root, "notes.txt", "go.mod")

	detected := receive(t, events).(entity.ProjectDetected)
	assert.Equal(t, entity.GoProject, detected.ProjectType)
	canonicalRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(detected.WorkspaceRoot)
	require.NoError(t, err)
	assert.Equal(t, canonicalRoot, gotRoot)
}

func TestMarkerDebounce(t *testing.T) {
	ctx := context.Background()
	clk := &fakeClock{now: time.Now()}
	m := newTestManager(t, _noWatch, clk, nil)
	root := t.TempDir()
	writeFiles(t, root, "Cargo.toml")

	m.scheduleRedetect(ctx, root)
	m.scheduleRedetect(ctx, root)
	pending := clk.pending()
	require.Len(t, pending, 1, "a later marker change replaces the pending re-detection")
	assert.Len(t, clk.timers, 2)

	_, ok := m.ProjectInfo(ctx, root)
	assert.False(t, ok, "nothing is detected before the timer fires")

	pending[0].fire()
	info, ok := m.ProjectInfo(ctx, root)
	require.True(t, ok)
	assert.Equal(t, entity.RustProject, info.ProjectType)
	assert.Equal(t, entity.ProjectDetected{WorkspaceRoot: filepath.Clean(root), ProjectType: entity.RustProject, Servers: info.LanguageServers}, <-m.events)

	m.watchMu.Lock()
	assert.Empty(t, m.debounce)
	m.watchMu.Unlock()
}

func TestForgetProject(t *testing.T) {
	ctx := context.Background()

	t.Run("stops watching the root", func(t *testing.T) {
		m := newTestManager(t, "{}", nil, nil)
		root := t.TempDir()
		writeFiles(t, root, "go.mod")

		require.NoError(t, m.Start(ctx))
		defer m.Stop(ctx)

		_, err := m.DetectProject(ctx, root)
		require.NoError(t, err)
		assert.Contains(t, m.watcher.WatchList(), filepath.Clean(root))

		m.ForgetProject(ctx, root+"/")

		_, ok := m.ProjectInfo(ctx, root)
		assert.False(t, ok)
		m.watchMu.Lock()
		assert.NotContains(t, m.watched, filepath.Clean(root))
		assert.NotContains(t, m.watcher.WatchList(), filepath.Clean(root))
		m.watchMu.Unlock()
	})

	t.Run("cancels a pending re-detection", func(t *testing.T) {
		clk := &fakeClock{now: time.Now()}
		m := newTestManager(t, _noWatch, clk, nil)
		root := t.TempDir()
		writeFiles(t, root, "go.mod")

		_, err := m.DetectProject(ctx, root)
		require.NoError(t, err)
		<-m.events
		m.scheduleRedetect(ctx, filepath.Clean(root))
		require.Len(t, clk.pending(), 1)

		m.ForgetProject(ctx, root)
		assert.Empty(t, clk.pending())
		m.watchMu.Lock()
		assert.Empty(t, m.debounce)
		assert.Empty(t, m.watched)
		m.watchMu.Unlock()
	})

	t.Run("keeps managed servers", func(t *testing.T) {
		m := newTestManager(t, _noWatch, nil, nil)
		_, _, err := m.RecordServer(ctx, factory.ManagedServer("/a", "gopls"))
		require.NoError(t, err)

		m.ForgetProject(ctx, "/a")
		assert.Len(t, m.ManagedServers(ctx, "/a"), 1)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
