// Package environment resolves the environment handed to language server processes for a directory.
package environment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/core"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/executor"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/shellenv"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	_defaultPath = "/usr/local/bin:/usr/bin:/bin:/usr/sbin:/sbin"

	_counterCacheHit       = "cache_hit"
	_counterCacheMiss      = "cache_miss"
	_counterCaptureTimeout = "capture_timeout"
	_counterFallback       = "fallback"
)

// Module provides the environment provider.
var Module = fx.Provide(New)

// Provider resolves and caches per directory environments.
type Provider interface {
	// GetEnvironment returns the environment for dir within the provider timeout.
	// It never fails: on timeout or capture failure the process environment is returned.
	GetEnvironment(ctx context.Context, dir string) entity.EnvironmentSnapshot
	// GetEnvironmentWithOverrides is GetEnvironment with overrides applied last.
	GetEnvironmentWithOverrides(ctx context.Context, dir string, overrides map[string]string) entity.EnvironmentSnapshot
	// Capture returns the cached environment of dir, capturing it on a miss.
	// Failed captures are cached as well, until the entry is cleared.
	Capture(ctx context.Context, dir string) (entity.EnvironmentSnapshot, error)
	// ProcessEnvironment returns the environment of the running process. PATH is always set.
	ProcessEnvironment() entity.EnvironmentSnapshot
	// Overlay returns the safelisted variables of a snapshot, to be applied to spawned servers.
	Overlay(snapshot entity.EnvironmentSnapshot) map[string]string
	ClearDirectoryCache(dir string)
	ClearAll()
	CachedDirectories() []string
}

// Params are inbound parameters to initialize a new provider.
type Params struct {
	fx.In

	Config   config.Provider
	Executor executor.Executor
	FS       fs.CoordFS
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
}

type cacheEntry struct {
	snapshot entity.EnvironmentSnapshot
	err      error
}

type provider struct {
	cfg      entity.EnvironmentConfig
	executor executor.Executor
	fs       fs.CoordFS
	logger   *zap.SugaredLogger
	stats    tally.Scope

	// environ and shell are replaced in tests.
	environ func() []string
	shell   func() string

	captures *semaphore.Weighted
	group    singleflight.Group

	mu         sync.Mutex
	cache      map[string]cacheEntry
	generation uint64
}

// New creates a new environment provider.
func New(p Params) (Provider, error) {
	cfg := entity.DefaultEnvironmentConfig()
	if err := core.PopulateIfPresent(p.Config, entity.EnvironmentConfigKey, &cfg); err != nil {
		return nil, fmt.Errorf("configure environment: %w", err)
	}
	if cfg.MaxConcurrentCaptures < 1 {
		cfg.MaxConcurrentCaptures = 1
	}

	return &provider{
		cfg:      cfg,
		executor: p.Executor,
		fs:       p.FS,
		logger:   p.Logger.Named("environment"),
		stats:    p.Stats.SubScope("environment"),
		environ:  os.Environ,
		shell:    func() string { return os.Getenv("SHELL") },
		captures: semaphore.NewWeighted(int64(cfg.MaxConcurrentCaptures)),
		cache:    make(map[string]cacheEntry),
	}, nil
}

func (p *provider) GetEnvironment(ctx context.Context, dir string) entity.EnvironmentSnapshot {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ProviderTimeout)
	defer cancel()

	snapshot, err := p.Capture(ctx, dir)
	if err != nil {
		p.stats.Counter(_counterFallback).Inc(1)
		p.logger.Warnw("using process environment", "dir", dir, "error", err)
		return p.ProcessEnvironment()
	}
	return snapshot
}

func (p *provider) GetEnvironmentWithOverrides(ctx context.Context, dir string, overrides map[string]string) entity.EnvironmentSnapshot {
	snapshot := p.GetEnvironment(ctx, dir)
	vars := make(map[string]string, len(snapshot.Vars)+len(overrides))
	for k, v := range snapshot.Vars {
		vars[k] = v
	}
	for k, v := range overrides {
		vars[k] = v
	}
	return entity.EnvironmentSnapshot{Vars: vars, Origin: snapshot.Origin}
}

func (p *provider) Capture(ctx context.Context, dir string) (entity.EnvironmentSnapshot, error) {
	// The environment of the launching terminal wins over any shell probe.
	if len(p.cfg.CLIEnvironment) > 0 {
		return p.merge(p.cfg.CLIEnvironment, entity.EnvironmentOriginCLI), nil
	}

	key := p.canonical(dir)
	p.mu.Lock()
	entry, ok := p.cache[key]
	generation := p.generation
	p.mu.Unlock()
	if ok {
		p.stats.Counter(_counterCacheHit).Inc(1)
		return entry.snapshot, entry.err
	}
	p.stats.Counter(_counterCacheMiss).Inc(1)

	ch := p.group.DoChan(key, func() (interface{}, error) {
		snapshot, err := p.load(key)
		p.mu.Lock()
		if p.generation == generation {
			p.cache[key] = cacheEntry{snapshot: snapshot, err: err}
		}
		p.mu.Unlock()
		return snapshot, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return entity.EnvironmentSnapshot{}, res.Err
		}
		return res.Val.(entity.EnvironmentSnapshot), nil
	case <-ctx.Done():
		return entity.EnvironmentSnapshot{}, fmt.Errorf("waiting for environment of %s: %w", key, ctx.Err())
	}
}

func (p *provider) ProcessEnvironment() entity.EnvironmentSnapshot {
	vars := entity.EnvironFromList(p.environ())
	if vars["PATH"] == "" {
		vars["PATH"] = _defaultPath
	}
	return entity.EnvironmentSnapshot{Vars: vars, Origin: entity.EnvironmentOriginProcess}
}

func (p *provider) Overlay(snapshot entity.EnvironmentSnapshot) map[string]string {
	return shellenv.Overlay(snapshot.Vars)
}

func (p *provider) ClearDirectoryCache(dir string) {
	key := p.canonical(dir)
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.cache, key)
	p.generation++
	p.group.Forget(key)
	p.logger.Debugw("cleared environment cache", "dir", key)
}

func (p *provider) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key := range p.cache {
		p.group.Forget(key)
	}
	p.cache = make(map[string]cacheEntry)
	p.generation++
}

func (p *provider) CachedDirectories() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	dirs := make([]string, 0, len(p.cache))
	for dir := range p.cache {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// load runs the shell probe for dir, bounded by the capture timeout.
func (p *provider) load(dir string) (entity.EnvironmentSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.CaptureTimeout)
	defer cancel()

	if err := p.captures.Acquire(ctx, 1); err != nil {
		p.stats.Counter(_counterCaptureTimeout).Inc(1)
		return entity.EnvironmentSnapshot{}, fmt.Errorf("waiting for a capture slot: %w", err)
	}
	defer p.captures.Release(1)

	type result struct {
		stdout   string
		stderr   string
		exitCode int
		err      error
	}
	done := make(chan result, 1)
	cmd := shellenv.CaptureCommand(ctx, p.shell(), dir)
	go func() {
		var r result
		r.stdout, r.stderr, r.exitCode, r.err = p.executor.Run(cmd)
		done <- r
	}()

	var r result
	select {
	case r = <-done:
	case <-ctx.Done():
		p.stats.Counter(_counterCaptureTimeout).Inc(1)
		p.logger.Warnw("shell environment capture timed out", "dir", dir, "timeout", p.cfg.CaptureTimeout)
		return entity.EnvironmentSnapshot{}, fmt.Errorf("shell environment capture timed out after %s", p.cfg.CaptureTimeout)
	}

	if r.err != nil || r.exitCode != 0 {
		return entity.EnvironmentSnapshot{}, fmt.Errorf("shell exited with code %d: %s: %v", r.exitCode, r.stderr, r.err)
	}

	vars, err := shellenv.ParseEnvironment([]byte(r.stdout))
	if err != nil {
		return entity.EnvironmentSnapshot{}, fmt.Errorf("%w: %v", errors.EmptyEnvironmentError, err)
	}

	snapshot := p.merge(vars, entity.EnvironmentOriginWorktreeShell)
	p.logger.Infow("captured shell environment", "dir", dir, "count", len(snapshot.Vars))
	return snapshot, nil
}

// merge layers vars over the process environment.
func (p *provider) merge(vars map[string]string, origin entity.EnvironmentOrigin) entity.EnvironmentSnapshot {
	merged := p.ProcessEnvironment().Vars
	for k, v := range vars {
		merged[k] = v
	}
	return entity.EnvironmentSnapshot{Vars: merged, Origin: origin}
}

func (p *provider) canonical(dir string) string {
	canonical, err := p.fs.Canonical(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return canonical
}
