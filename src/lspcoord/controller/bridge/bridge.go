// Package bridge starts language server processes and forwards document and completion traffic to them.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/environment"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/project"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	languageserver "github.com/nucleotide/lspcoord/src/lspcoord/gateway/language-server"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/core"
	coorderrors "github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/logfilewriter"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/shellenv"
	workspaceutils "github.com/nucleotide/lspcoord/src/lspcoord/internal/workspace-utils"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"github.com/nucleotide/lspcoord/src/lspcoord/repository/editor"
	"github.com/uber-go/tally"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	_clientName      = "lspcoord"
	_rustLanguageID  = "rust"
	_rustAnalyzer    = "rust-analyzer"
	_shutdownTimeout = 5 * time.Second

	_timerStartupLatency = "startup_latency"
)

// Module provides the language server bridge.
var Module = fx.Provide(New)

// CompletionServer is a running server able to answer completion requests for a document.
type CompletionServer struct {
	ServerID          uuid.UUID
	ServerName        string
	TriggerCharacters []string
}

// Bridge owns the running language server clients.
type Bridge interface {
	project.ServerBridge

	// StartServer launches and initializes a server for root. A server already running for (root, name) is returned as is.
	StartServer(ctx context.Context, root string, serverName string, languageID string) (uuid.UUID, error)
	// StopServer shuts the server down and removes it from the manager registry.
	StopServer(ctx context.Context, id uuid.UUID) error
	// EnsureDocumentTracked opens the document on the server once. Documents without a path are ignored.
	EnsureDocumentTracked(ctx context.Context, id uuid.UUID, docID entity.DocumentID) error
	// SyncDocument sends the current text of the document to every server tracking it.
	SyncDocument(ctx context.Context, docID entity.DocumentID) error
	// CloseDocument notifies every server tracking the document that it was closed.
	CloseDocument(ctx context.Context, docID entity.DocumentID) error
	ServerCapabilities(id uuid.UUID) (protocol.ServerCapabilities, bool)
	Servers() []entity.ManagedServer
	// CompletionServers returns the ready servers that provide completions for the document, oldest first.
	CompletionServers(ctx context.Context, docID entity.DocumentID) ([]CompletionServer, error)
	Completion(ctx context.Context, id uuid.UUID, params *protocol.CompletionParams) (*protocol.CompletionList, error)
	// StopAll stops every running server in parallel.
	StopAll(ctx context.Context) error
}

// Params are inbound parameters to initialize a new bridge.
type Params struct {
	fx.In

	Config         config.Provider
	Gateway        languageserver.Gateway
	Environment    environment.Provider `optional:"true"`
	Manager        project.Manager
	Editor         editor.Repository
	WorkspaceUtils workspaceutils.WorkspaceUtils
	LogFiles       logfilewriter.Factory
	Logger         *zap.SugaredLogger
	Stats          tally.Scope
	Lifecycle      fx.Lifecycle `optional:"true"`
}

type serverEntry struct {
	server    entity.ManagedServer
	client    languageserver.Client
	stderr    io.WriteCloser
	languages entity.LanguageServerConfig
	stopped   chan struct{}
	stopOnce  sync.Once

	// Guarded by bridge.mu.
	ready        bool
	capabilities protocol.ServerCapabilities
	syncKind     protocol.TextDocumentSyncKind
	// tracked holds the text last sent to the server for every open document.
	tracked map[entity.DocumentID]string
}

type bridge struct {
	cfg            entity.ProjectLspConfig
	languages      entity.LanguageServerConfigs
	gateway        languageserver.Gateway
	environment    environment.Provider
	manager        project.Manager
	editor         editor.Repository
	workspaceUtils workspaceutils.WorkspaceUtils
	logFiles       logfilewriter.Factory
	logger         *zap.SugaredLogger
	stats          tally.Scope

	startups *semaphore.Weighted
	starting singleflight.Group

	mu      sync.RWMutex
	servers map[uuid.UUID]*serverEntry

	// environ is replaced in tests.
	environ func() []string
}

// New creates a new bridge and registers it with the project manager.
func New(p Params) (Bridge, error) {
	cfg := entity.DefaultProjectLspConfig()
	if err := core.PopulateIfPresent(p.Config, entity.ProjectLspConfigKey, &cfg); err != nil {
		return nil, fmt.Errorf("configure bridge: %w", err)
	}
	if cfg.MaxConcurrentStartups <= 0 {
		return nil, coorderrors.Configuration("maxConcurrentStartups must be positive, got %d", cfg.MaxConcurrentStartups)
	}

	configured := entity.LanguageServerConfigs{}
	if err := core.PopulateIfPresent(p.Config, entity.LanguageServersConfigKey, &configured); err != nil {
		return nil, fmt.Errorf("configure language servers: %w", err)
	}
	languages := entity.DefaultLanguageServers()
	for name, c := range configured {
		languages[name] = c
	}

	b := &bridge{
		cfg:            cfg,
		languages:      languages,
		gateway:        p.Gateway,
		environment:    p.Environment,
		manager:        p.Manager,
		editor:         p.Editor,
		workspaceUtils: p.WorkspaceUtils,
		logFiles:       p.LogFiles,
		logger:         p.Logger.Named("bridge"),
		stats:          p.Stats.SubScope("bridge"),
		startups:       semaphore.NewWeighted(int64(cfg.MaxConcurrentStartups)),
		servers:        make(map[uuid.UUID]*serverEntry),
		environ:        os.Environ,
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: b.StopAll,
		})
	}
	p.Manager.SetBridge(b)
	return b, nil
}

// NewWithEnvironment creates a bridge that spawns servers with the environment resolved by provider.
func NewWithEnvironment(p Params, provider environment.Provider) (Bridge, error) {
	p.Environment = provider
	return New(p)
}

func (b *bridge) StartServer(ctx context.Context, root string, serverName string, languageID string) (uuid.UUID, error) {
	root = filepath.Clean(root)
	result, err, _ := b.starting.Do(root+"\x00"+serverName, func() (interface{}, error) {
		if existing, ok := b.find(root, serverName); ok {
			b.logger.Infow("server already running", "root", root, "server", serverName, "serverID", existing)
			return existing, nil
		}
		return b.start(ctx, root, serverName, languageID)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return result.(uuid.UUID), nil
}

func (b *bridge) start(ctx context.Context, root string, serverName string, languageID string) (id uuid.UUID, err error) {
	started := time.Now()
	defer func() {
		b.publishStartup(root, serverName, id, err)
	}()

	launch, ok := b.languages[serverName]
	if !ok || launch.Command == "" {
		return uuid.Nil, coorderrors.Configuration("no launch command configured for language server %q", serverName)
	}

	if err := b.startups.Acquire(ctx, 1); err != nil {
		return uuid.Nil, &coorderrors.ServerStartupError{ServerName: serverName, WorkspaceRoot: root, Err: err}
	}
	defer b.startups.Release(1)

	env := b.serverEnvironment(ctx, root)
	command, err := lookPath(launch.Command, env)
	if err != nil {
		return uuid.Nil, &coorderrors.ServerStartupError{ServerName: serverName, WorkspaceRoot: root, MissingBinary: true, Err: err}
	}

	roots := []string{root}
	if languageID == _rustLanguageID || serverName == _rustAnalyzer {
		if rustRoots, err := b.workspaceUtils.RustWorkspaceRoots(root); err != nil {
			b.logger.Warnw("resolving rust workspace roots", "root", root, "error", err)
		} else if len(rustRoots) > 0 {
			roots = rustRoots
		}
	}

	id, err = uuid.NewV4()
	if err != nil {
		return uuid.Nil, coorderrors.Internal("generating server id: %v", err)
	}

	stderr, err := b.logFiles.NewServerWriter(serverName, id)
	if err != nil {
		b.logger.Warnw("server stderr will be discarded", "server", serverName, "error", err)
		stderr = nil
	}

	client, err := b.gateway.Launch(ctx, languageserver.LaunchSpec{
		Name:    serverName,
		Command: command,
		Args:    launch.Args,
		Dir:     root,
		Env:     env,
		Stderr:  stderr,
	})
	if err != nil {
		closeWriter(stderr)
		return uuid.Nil, &coorderrors.ServerStartupError{ServerName: serverName, WorkspaceRoot: root, Err: err}
	}

	capabilities, err := b.initialize(ctx, client, roots)
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
		defer cancel()
		if shutdownErr := client.Shutdown(shutdownCtx); shutdownErr != nil {
			b.logger.Warnw("shutting down server after failed initialization", "server", serverName, "error", shutdownErr)
		}
		closeWriter(stderr)

		startupErr := &coorderrors.ServerStartupError{ServerName: serverName, WorkspaceRoot: root, Err: err}
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			startupErr.Timeout = b.cfg.StartupTimeout
		}
		return uuid.Nil, startupErr
	}

	entry := &serverEntry{
		server: entity.ManagedServer{
			ServerID:      id,
			ServerName:    serverName,
			WorkspaceRoot: root,
			LanguageID:    languageID,
			StartedAt:     time.Now(),
		},
		client:       client,
		stderr:       stderr,
		languages:    launch,
		stopped:      make(chan struct{}),
		ready:        true,
		capabilities: capabilities,
		syncKind:     mapper.ServerCapabilitiesSyncKind(capabilities),
		tracked:      make(map[entity.DocumentID]string),
	}

	b.mu.Lock()
	b.servers[id] = entry
	b.mu.Unlock()
	go b.watchExit(entry)

	b.stats.Timer(_timerStartupLatency).Record(time.Since(started))
	b.logger.Infow("language server started", "root", root, "server", serverName, "serverID", id, "roots", roots)
	return id, nil
}

func (b *bridge) initialize(ctx context.Context, client languageserver.Client, roots []string) (protocol.ServerCapabilities, error) {
	initCtx, cancel := context.WithTimeout(ctx, b.cfg.StartupTimeout)
	defer cancel()

	result, err := client.Initialize(initCtx, mapper.WorkspaceRootsToInitializeParams(int32(os.Getpid()), _clientName, roots))
	if err != nil {
		if initCtx.Err() != nil {
			return protocol.ServerCapabilities{}, initCtx.Err()
		}
		return protocol.ServerCapabilities{}, fmt.Errorf("initialize: %w", err)
	}
	if err := client.Initialized(initCtx); err != nil {
		return protocol.ServerCapabilities{}, fmt.Errorf("initialized: %w", err)
	}
	if result == nil {
		return protocol.ServerCapabilities{}, nil
	}
	return result.Capabilities, nil
}

// serverEnvironment builds the environment of a spawned server. The environment of this process is left untouched.
func (b *bridge) serverEnvironment(ctx context.Context, root string) []string {
	base := b.environ()
	if b.environment == nil {
		return base
	}

	snapshot := b.environment.GetEnvironment(ctx, root)
	if snapshot.Origin == entity.EnvironmentOriginProcess {
		b.logger.Warnw("using the process environment for language server", "root", root)
	}
	return shellenv.Apply(base, b.environment.Overlay(snapshot))
}

func (b *bridge) publishStartup(root string, serverName string, id uuid.UUID, err error) {
	event := entity.ServerStartupCompleted{
		WorkspaceRoot: root,
		ServerName:    serverName,
		ServerID:      id,
		Status:        entity.StartupSuccess,
	}
	if err != nil {
		event.Status = entity.StartupFailed
		event.Error = err.Error()

		var startupErr *coorderrors.ServerStartupError
		if kind, _ := coorderrors.KindOf(err); kind == coorderrors.KindConfiguration {
			event.Status = entity.StartupConfigurationError
		} else if errors.As(err, &startupErr) && startupErr.Timeout > 0 {
			event.Status = entity.StartupTimeout
		}
		b.logger.Warnw("language server failed to start", "root", root, "server", serverName, "error", err)
	}
	b.manager.Publish(event)
}

// watchExit forgets a server whose process exited without being stopped.
func (b *bridge) watchExit(entry *serverEntry) {
	select {
	case <-entry.stopped:
		return
	case <-entry.client.Done():
	}

	b.mu.Lock()
	current, ok := b.servers[entry.server.ServerID]
	if ok && current == entry {
		delete(b.servers, entry.server.ServerID)
	}
	b.mu.Unlock()
	if !ok {
		return
	}

	b.logger.Warnw("language server exited unexpectedly", "root", entry.server.WorkspaceRoot, "server", entry.server.ServerName, "serverID", entry.server.ServerID)
	entry.stopOnce.Do(func() { close(entry.stopped) })
	closeWriter(entry.stderr)
}

func (b *bridge) StopServer(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	entry, ok := b.servers[id]
	delete(b.servers, id)
	b.mu.Unlock()

	var err error
	if ok {
		entry.stopOnce.Do(func() { close(entry.stopped) })

		shutdownCtx, cancel := context.WithTimeout(ctx, _shutdownTimeout)
		defer cancel()
		if shutdownErr := entry.client.Shutdown(shutdownCtx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutting down %s: %w", entry.server.ServerName, shutdownErr))
		}
		if entry.stderr != nil {
			err = multierr.Append(err, entry.stderr.Close())
		}
		b.logger.Infow("language server stopped", "root", entry.server.WorkspaceRoot, "server", entry.server.ServerName, "serverID", id)
	}

	if _, removeErr := b.manager.RemoveServer(ctx, id); removeErr != nil {
		if _, notFound := coorderrors.NotFoundServer(removeErr); !notFound {
			err = multierr.Append(err, removeErr)
		} else if !ok {
			// Unknown to both the bridge and the registry.
			return removeErr
		}
	}
	return err
}

func (b *bridge) StopAll(ctx context.Context) error {
	b.mu.RLock()
	ids := make([]uuid.UUID, 0, len(b.servers))
	for id := range b.servers {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	var (
		errMu sync.Mutex
		errs  error
	)
	group, groupCtx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		group.Go(func() error {
			if err := b.StopServer(groupCtx, id); err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, err)
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()
	return errs
}

func (b *bridge) HasServer(id uuid.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.servers[id]
	return ok
}

func (b *bridge) IsServerReady(id uuid.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.servers[id]
	return ok && entry.ready
}

func (b *bridge) ServerCapabilities(id uuid.UUID) (protocol.ServerCapabilities, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.servers[id]
	if !ok {
		return protocol.ServerCapabilities{}, false
	}
	return entry.capabilities, true
}

func (b *bridge) Servers() []entity.ManagedServer {
	b.mu.RLock()
	result := make([]entity.ManagedServer, 0, len(b.servers))
	for _, entry := range b.servers {
		result = append(result, entry.server)
	}
	b.mu.RUnlock()

	sortServers(result)
	return result
}

func (b *bridge) Completion(ctx context.Context, id uuid.UUID, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	b.mu.RLock()
	entry, ok := b.servers[id]
	b.mu.RUnlock()
	if !ok {
		return nil, &coorderrors.ServerNotFoundError{ID: id}
	}

	list, err := entry.client.Completion(ctx, params)
	if err != nil {
		return nil, coorderrors.Communication("completion from %s: %v", entry.server.ServerName, err)
	}
	return list, nil
}

func (b *bridge) find(root string, serverName string) (uuid.UUID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, entry := range b.servers {
		if entry.server.WorkspaceRoot == root && entry.server.ServerName == serverName {
			return id, true
		}
	}
	return uuid.Nil, false
}

// lookPath resolves command against the PATH of the server environment, then against the PATH of this process.
func lookPath(command string, env []string) (string, error) {
	if strings.ContainsRune(command, filepath.Separator) {
		return exec.LookPath(command)
	}

	for i := len(env) - 1; i >= 0; i-- {
		value, ok := strings.CutPrefix(env[i], "PATH=")
		if !ok {
			continue
		}
		for _, dir := range filepath.SplitList(value) {
			if dir == "" {
				continue
			}
			if path, err := exec.LookPath(filepath.Join(dir, command)); err == nil {
				return path, nil
			}
		}
		break
	}
	return exec.LookPath(command)
}

func sortServers(servers []entity.ManagedServer) {
	sort.Slice(servers, func(i, j int) bool {
		if !servers[i].StartedAt.Equal(servers[j].StartedAt) {
			return servers[i].StartedAt.Before(servers[j].StartedAt)
		}
		return servers[i].ServerName < servers[j].ServerName
	})
}

func closeWriter(w io.WriteCloser) {
	if w != nil {
		_ = w.Close()
	}
}
