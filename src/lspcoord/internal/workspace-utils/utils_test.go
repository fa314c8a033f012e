package workspaceutils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client/editorclientmock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs/fsmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("extra markers from config", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader("projectLsp:\n  projectMarkers: [WORKSPACE]\n")))
		require.NoError(t, err)
		w, err := New(Params{
			Config:        cfg,
			EditorGateway: editorclientmock.NewMockGateway(ctrl),
			Logger:        zap.NewNop().Sugar(),
			FS:            fsmock.NewMockCoordFS(ctrl),
		})
		require.NoError(t, err)
		assert.Contains(t, w.(*workspaceUtilsImpl).markers, "WORKSPACE")
		assert.Contains(t, w.(*workspaceUtilsImpl).markers, ".git")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader("projectLsp:\n  projectMarkers: {a: b}\n")))
		require.NoError(t, err)
		_, err = New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), FS: fsmock.NewMockCoordFS(ctrl)})
		assert.Error(t, err)
	})
}

func TestFindWorkspaceRoot(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	outer := filepath.Join(tmp, "outer")
	inner := filepath.Join(outer, "vendor", "inner")
	deep := filepath.Join(inner, "src", "deep")
	require.NoError(t, os.MkdirAll(filepath.Join(outer, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inner, ".git"), []byte("gitdir: ../.git/modules/inner"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(outer, "pkg"), 0o755))

	c := workspaceUtilsImpl{
		logger:  zap.NewNop().Sugar(),
		fs:      fs.New(),
		markers: _rootMarkers,
	}

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "nearest marker wins", dir: deep, want: inner},
		{name: "marker in the directory itself", dir: inner, want: inner},
		{name: "outer repository", dir: filepath.Join(outer, "pkg"), want: outer},
		{name: "missing directory resolves through its ancestors", dir: filepath.Join(outer, "pkg", "missing"), want: outer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.FindWorkspaceRoot(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindWorkspaceRootWithoutMarkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsMock := fsmock.NewMockCoordFS(ctrl)
	c := workspaceUtilsImpl{
		logger:  zap.NewNop().Sugar(),
		fs:      fsMock,
		markers: _rootMarkers,
	}

	t.Run("start directory is the root", func(t *testing.T) {
		fsMock.EXPECT().Canonical("/a/b").Return("/a/b", nil)
		fsMock.EXPECT().FileExists(gomock.Any()).Return(false, nil).AnyTimes()
		fsMock.EXPECT().DirExists(gomock.Any()).Return(false, nil).AnyTimes()

		got, err := c.FindWorkspaceRoot("/a/b")
		require.NoError(t, err)
		assert.Equal(t, "/a/b", got)
	})

	t.Run("canonical error", func(t *testing.T) {
		fsMock.EXPECT().Canonical("/x").Return("", errors.New("denied"))
		_, err := c.FindWorkspaceRoot("/x")
		assert.Error(t, err)
	})
}

func TestFindWorkspaceRootStatError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsMock := fsmock.NewMockCoordFS(ctrl)
	c := workspaceUtilsImpl{
		logger:  zap.NewNop().Sugar(),
		fs:      fsMock,
		markers: []string{".git"},
	}

	fsMock.EXPECT().Canonical("/a").Return("/a", nil)
	fsMock.EXPECT().FileExists("/a/.git").Return(false, errors.New("denied"))
	_, err := c.FindWorkspaceRoot("/a")
	assert.Error(t, err)
}

func TestGetWorkspaceRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	editorMock := editorclientmock.NewMockGateway(ctrl)

	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	first := filepath.Join(tmp, "first")
	second := filepath.Join(tmp, "second")
	for _, dir := range []string{first, second} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hg"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "foo", "bar"), 0o755))
	}

	c := workspaceUtilsImpl{
		logger:        zap.NewNop().Sugar(),
		editorGateway: editorMock,
		fs:            fs.New(),
		markers:       _rootMarkers,
	}

	t.Run("valid workspace folders", func(t *testing.T) {
		result, err := c.GetWorkspaceRoot(ctx, []protocol.WorkspaceFolder{
			{URI: "file://" + first + "/foo/bar"},
			{URI: "file://" + first + "/foo"},
		})
		assert.NoError(t, err)
		assert.Equal(t, first, result)
	})

	t.Run("conflicting roots", func(t *testing.T) {
		editorMock.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(nil)
		result, err := c.GetWorkspaceRoot(ctx, []protocol.WorkspaceFolder{
			{URI: "file://" + first + "/foo/bar"},
			{URI: "file://" + second + "/foo/bar"},
		})
		assert.NoError(t, err)
		assert.Equal(t, first, result)
	})

	t.Run("conflict warning failure is not fatal", func(t *testing.T) {
		editorMock.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(errors.New("closed"))
		result, err := c.GetWorkspaceRoot(ctx, []protocol.WorkspaceFolder{
			{URI: "file://" + second},
			{URI: "file://" + first},
		})
		assert.NoError(t, err)
		assert.Equal(t, second, result)
	})

	t.Run("invalid uri", func(t *testing.T) {
		result, err := c.GetWorkspaceRoot(ctx, []protocol.WorkspaceFolder{
			{URI: "file://" + first + "/foo%2Gbar"},
			{URI: "file://" + first + "/foo"},
		})
		assert.NoError(t, err)
		assert.Equal(t, first, result)
	})

	t.Run("no workspace found", func(t *testing.T) {
		_, err := c.GetWorkspaceRoot(ctx, []protocol.WorkspaceFolder{
			{URI: "file://" + first + "/foo%2Gbar"},
		})
		assert.Error(t, err)
	})

	t.Run("no folders", func(t *testing.T) {
		_, err := c.GetWorkspaceRoot(ctx, nil)
		assert.Error(t, err)
	})
}

func TestRustWorkspaceRoots(t *testing.T) {
	write := func(t *testing.T, path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	c := workspaceUtilsImpl{
		logger:  zap.NewNop().Sugar(),
		fs:      fs.New(),
		markers: _rootMarkers,
	}

	t.Run("workspace with members", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "Cargo.toml"), "[workspace]\nmembers = [\"crates/*\", \"app\"]\n")
		write(t, filepath.Join(root, "app", "Cargo.toml"), "[package]\nname = \"app\"\n")
		write(t, filepath.Join(root, "crates", "core", "Cargo.toml"), "[package]\nname = \"core\"\n")
		write(t, filepath.Join(root, "target", "debug", "Cargo.toml"), "")
		write(t, filepath.Join(root, "crates", "too", "deep", "Cargo.toml"), "")

		roots, err := c.RustWorkspaceRoots(root)
		require.NoError(t, err)
		assert.Equal(t, []string{root, filepath.Join(root, "app"), filepath.Join(root, "crates", "core")}, roots)
	})

	t.Run("single crate", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"single\"\n")
		write(t, filepath.Join(root, "examples", "demo", "Cargo.toml"), "[package]\nname = \"demo\"\n")

		roots, err := c.RustWorkspaceRoots(root)
		require.NoError(t, err)
		assert.Equal(t, []string{root}, roots)
	})

	t.Run("invalid manifest with workspace table", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "Cargo.toml"), "[workspace]\nmembers = [\n")
		write(t, filepath.Join(root, "member", "Cargo.toml"), "")

		roots, err := c.RustWorkspaceRoots(root)
		require.NoError(t, err)
		assert.Equal(t, []string{root, filepath.Join(root, "member")}, roots)
	})

	t.Run("no manifest at root", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "b", "Cargo.toml"), "")
		write(t, filepath.Join(root, "a", "Cargo.toml"), "")

		roots, err := c.RustWorkspaceRoots(root)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "b")}, roots)
	})

	t.Run("root limit", func(t *testing.T) {
		root := t.TempDir()
		for i := 0; i < _maxRustRoots+10; i++ {
			write(t, filepath.Join(root, "crates", "c"+strings.Repeat("x", i%5)+string(rune('a'+i%26))+string(rune('a'+i/26)), "Cargo.toml"), "")
		}

		roots, err := c.RustWorkspaceRoots(root)
		require.NoError(t, err)
		assert.Len(t, roots, _maxRustRoots)
	})

	t.Run("unreadable root", func(t *testing.T) {
		_, err := c.RustWorkspaceRoots(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}
