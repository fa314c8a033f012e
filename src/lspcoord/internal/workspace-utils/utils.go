package workspaceutils

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	editorclient "github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/core"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_cargoManifest  = "Cargo.toml"
	_cargoTargetDir = "target"
	_maxRustRoots   = 64
)

var _rootMarkers = []string{".git", ".svn", ".hg", ".jj", ".helix"}

// Module provides a new WorkspaceUtils.
var Module = fx.Provide(New)

// WorkspaceUtils is a utility interface for getting workspace related information.
type WorkspaceUtils interface {
	// FindWorkspaceRoot returns the nearest ancestor of dir, dir included, that contains a root marker.
	// When no ancestor has one, dir itself is the root.
	FindWorkspaceRoot(dir string) (string, error)
	// GetWorkspaceRoot resolves the root shared by the given workspace folders, warning the editor about conflicts.
	GetWorkspaceRoot(ctx context.Context, workspaceFolders []protocol.WorkspaceFolder) (string, error)
	// RustWorkspaceRoots returns the directories to pass as workspace folders to rust-analyzer.
	RustWorkspaceRoots(root string) ([]string, error)
}

// Params are the parameters required to create a new WorkspaceUtils.
type Params struct {
	fx.In

	Config        config.Provider
	EditorGateway editorclient.Gateway
	Logger        *zap.SugaredLogger
	FS            fs.CoordFS
}

type workspaceUtilsImpl struct {
	editorGateway editorclient.Gateway
	logger        *zap.SugaredLogger
	fs            fs.CoordFS
	markers       []string
}

type cargoManifest struct {
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// New creates a new WorkspaceUtils.
func New(p Params) (WorkspaceUtils, error) {
	cfg := entity.DefaultProjectLspConfig()
	if err := core.PopulateIfPresent(p.Config, entity.ProjectLspConfigKey, &cfg); err != nil {
		return nil, err
	}

	markers := append([]string{}, _rootMarkers...)
	markers = append(markers, cfg.ProjectMarkers...)

	return &workspaceUtilsImpl{
		editorGateway: p.EditorGateway,
		logger:        p.Logger,
		fs:            p.FS,
		markers:       markers,
	}, nil
}

func (c *workspaceUtilsImpl) FindWorkspaceRoot(dir string) (string, error) {
	start, err := c.fs.Canonical(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", dir, err)
	}

	for current := start; ; {
		for _, marker := range c.markers {
			found, err := c.exists(filepath.Join(current, marker))
			if err != nil {
				return "", err
			}
			if found {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return start, nil
}

func (c *workspaceUtilsImpl) GetWorkspaceRoot(ctx context.Context, workspaceFolders []protocol.WorkspaceFolder) (string, error) {
	if len(workspaceFolders) == 0 {
		return "", fmt.Errorf("no workspace folders provided")
	}

	// Find the workspace root and look for any conflicting folders.
	result := ""
	for _, folder := range workspaceFolders {
		// Folders may be improperly formatted or missing. Only fail when none of them resolves.
		fileSystemPath, err := url.Parse(folder.URI)
		if err != nil || fileSystemPath.Path == "" {
			continue
		}

		out, err := c.FindWorkspaceRoot(fileSystemPath.Path)
		if err != nil {
			continue
		}

		if result == "" {
			result = out
		} else if result != out {
			msg := fmt.Sprintf("Workspace root is %q, but a folder in %q is also included. Servers are only started for %q.", result, out, result)
			if err := c.editorGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
				Type:    protocol.MessageTypeWarning,
				Message: msg,
			}); err != nil {
				c.logger.Warnw("showing workspace conflict", "error", err)
			}
			c.logger.Warn(msg)
			break
		}
	}

	if result == "" {
		folderStrings := []string{}
		for _, folder := range workspaceFolders {
			folderStrings = append(folderStrings, folder.URI)
		}
		return "", fmt.Errorf("unable to determine a workspace root among the following searched folders: %v", strings.Join(folderStrings, ", "))
	}

	return result, nil
}

func (c *workspaceUtilsImpl) RustWorkspaceRoots(root string) ([]string, error) {
	manifestPath := filepath.Join(root, _cargoManifest)
	hasManifest, err := c.fs.FileExists(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", manifestPath, err)
	}

	roots := []string{}
	if hasManifest {
		roots = append(roots, root)
		if !c.isCargoWorkspace(manifestPath) {
			return roots, nil
		}
	}

	// Member crates of a workspace, or the crates of a directory without a manifest, within two levels.
	nested, err := c.nestedCrates(root)
	if err != nil {
		return nil, err
	}
	roots = append(roots, nested...)
	sort.Strings(roots)
	return roots, nil
}

func (c *workspaceUtilsImpl) nestedCrates(root string) ([]string, error) {
	result := []string{}
	entries, err := c.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	for _, entry := range entries {
		if len(result) >= _maxRustRoots {
			break
		}
		if !entry.IsDir() || entry.Name() == _cargoTargetDir {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		if ok, _ := c.fs.FileExists(filepath.Join(dir, _cargoManifest)); ok {
			result = append(result, dir)
			continue
		}

		subs, err := c.fs.ReadDir(dir)
		if err != nil {
			c.logger.Debugw("skipping unreadable directory", "dir", dir, "error", err)
			continue
		}
		for _, sub := range subs {
			if len(result) >= _maxRustRoots {
				break
			}
			if !sub.IsDir() || sub.Name() == _cargoTargetDir {
				continue
			}
			subdir := filepath.Join(dir, sub.Name())
			if ok, _ := c.fs.FileExists(filepath.Join(subdir, _cargoManifest)); ok {
				result = append(result, subdir)
			}
		}
	}
	return result, nil
}

func (c *workspaceUtilsImpl) isCargoWorkspace(manifestPath string) bool {
	content, err := c.fs.ReadFile(manifestPath)
	if err != nil {
		return false
	}

	manifest := cargoManifest{}
	if _, err := toml.Decode(string(content), &manifest); err != nil {
		c.logger.Debugw("invalid cargo manifest, falling back to a text search", "path", manifestPath, "error", err)
		return strings.Contains(string(content), "[workspace]")
	}
	return manifest.Workspace != nil
}

func (c *workspaceUtilsImpl) exists(path string) (bool, error) {
	isFile, err := c.fs.FileExists(path)
	if err != nil {
		return false, err
	}
	if isFile {
		return true, nil
	}
	return c.fs.DirExists(path)
}
