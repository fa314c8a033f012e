// Package project detects workspace projects, tracks the language servers started for them
// and publishes the lifecycle events consumed by the coordinator.
package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/clock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/core"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/repository/servers"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_systemRoot = "/"

	_eventBufferSize        = 256
	_subscriptionBufferSize = 64

	// _warmupPeriod is the age below which a ready server is still reported as unresponsive.
	_warmupPeriod = 5 * time.Second

	_counterEventsDropped      = "events.dropped"
	_counterHealthUnresponsive = "health.unresponsive"
)

// Module provides the project manager.
var Module = fx.Provide(New)

// ServerBridge is the part of the language server bridge the manager relies on.
type ServerBridge interface {
	// HasServer reports whether the bridge still tracks a running process for the id.
	HasServer(id uuid.UUID) bool
	// IsServerReady reports whether the server completed its initialize handshake.
	IsServerReady(id uuid.UUID) bool
}

// Manager owns project detection and the registry of servers started for each workspace root.
type Manager interface {
	// DetectProject classifies root. An unknown project is reported as a DetectionError and not stored.
	// When proactive startup is enabled, a ProjectDetected event is published; servers are never started inline.
	DetectProject(ctx context.Context, root string) (entity.ProjectInfo, error)
	// ProjectInfo returns the last successful detection of root.
	ProjectInfo(ctx context.Context, root string) (entity.ProjectInfo, bool)
	ManagedServers(ctx context.Context, root string) []entity.ManagedServer
	// RecordServer registers a started server. Recording an already known (root, name) pair returns the existing entry.
	RecordServer(ctx context.Context, server entity.ManagedServer) (entity.ManagedServer, bool, error)
	RemoveServer(ctx context.Context, id uuid.UUID) (entity.ManagedServer, error)
	RemoveProject(ctx context.Context, root string) []entity.ManagedServer
	// ForgetProject drops the detection of root and stops watching its markers. Managed servers are left untouched.
	ForgetProject(ctx context.Context, root string)
	// SetBridge wires the manager to the server startup mechanism. Without a bridge the manager only detects and logs.
	SetBridge(bridge ServerBridge)
	HasBridge() bool
	// Publish queues an event without blocking. Events are dropped when the queue is full.
	Publish(event entity.ProjectEvent)
	// Subscribe replaces the active subscriber. The previous subscription channel is closed.
	Subscribe() <-chan entity.ProjectEvent
	Start(ctx context.Context) error
	// Stop is idempotent and may be called without Start.
	Stop(ctx context.Context) error
}

// Params are inbound parameters to initialize a new manager.
type Params struct {
	fx.In

	Config    config.Provider
	FS        fs.CoordFS
	Clock     clock.Clock
	Servers   servers.Repository
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Lifecycle fx.Lifecycle
}

type manager struct {
	cfg      entity.ProjectLspConfig
	detector *detector
	clock    clock.Clock
	servers  servers.Repository
	logger   *zap.SugaredLogger
	stats    tally.Scope

	bridgeMu sync.RWMutex
	bridge   ServerBridge

	projectsMu sync.RWMutex
	projects   map[string]entity.ProjectInfo

	events chan entity.ProjectEvent

	subMu      sync.Mutex
	subscriber chan entity.ProjectEvent

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	watchMu  sync.Mutex
	watcher  *fsnotify.Watcher
	watched  map[string]struct{}
	debounce map[string]clock.Timer
}

// New creates a new project manager.
func New(p Params) (Manager, error) {
	cfg := entity.DefaultProjectLspConfig()
	if err := core.PopulateIfPresent(p.Config, entity.ProjectLspConfigKey, &cfg); err != nil {
		return nil, fmt.Errorf("configure project detection: %w", err)
	}
	if cfg.HealthCheckInterval <= 0 {
		return nil, errors.Configuration("healthCheckInterval must be positive, got %s", cfg.HealthCheckInterval)
	}

	m := &manager{
		cfg: cfg,
		detector: &detector{
			fs:            p.FS,
			customMarkers: cfg.CustomMarkers,
		},
		clock:    p.Clock,
		servers:  p.Servers,
		logger:   p.Logger.Named("project"),
		stats:    p.Stats,
		projects: make(map[string]entity.ProjectInfo),
		events:   make(chan entity.ProjectEvent, _eventBufferSize),
		watched:  make(map[string]struct{}),
		debounce: make(map[string]clock.Timer),
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStart: m.Start,
			OnStop:  m.Stop,
		})
	}
	return m, nil
}

func (m *manager) DetectProject(ctx context.Context, root string) (entity.ProjectInfo, error) {
	root = filepath.Clean(root)
	m.logger.Infow("detecting project", "root", root)

	if isDir, err := m.detector.fs.DirExists(root); err != nil || !isDir {
		return entity.ProjectInfo{}, &errors.DetectionError{WorkspaceRoot: root, Reason: "not a directory"}
	}

	projectType, servers, err := m.detector.classify(root)
	if err != nil {
		return entity.ProjectInfo{}, &errors.DetectionError{WorkspaceRoot: root, Reason: err.Error()}
	}
	m.watch(root)

	if projectType.IsUnknown() {
		m.logger.Infow("no project markers found", "root", root)
		return entity.ProjectInfo{}, &errors.DetectionError{WorkspaceRoot: root, Reason: "unknown project type"}
	}

	info := entity.ProjectInfo{
		WorkspaceRoot:   root,
		ProjectType:     projectType,
		LanguageServers: servers,
		DetectedAt:      m.clock.Now(),
	}
	m.projectsMu.Lock()
	m.projects[root] = info
	m.projectsMu.Unlock()

	m.logger.Infow("project detected", "root", root, "projectType", projectType.String(), "languageServers", servers)
	if m.cfg.EnableProactiveStartup {
		m.Publish(entity.ProjectDetected{
			WorkspaceRoot: root,
			ProjectType:   projectType,
			Servers:       servers,
		})
	}
	return info, nil
}

func (m *manager) ProjectInfo(ctx context.Context, root string) (entity.ProjectInfo, bool) {
	m.projectsMu.RLock()
	defer m.projectsMu.RUnlock()

	info, ok := m.projects[filepath.Clean(root)]
	return info, ok
}

func (m *manager) ManagedServers(ctx context.Context, root string) []entity.ManagedServer {
	return m.servers.GetAllFromWorkspaceRoot(ctx, filepath.Clean(root))
}

func (m *manager) RecordServer(ctx context.Context, server entity.ManagedServer) (entity.ManagedServer, bool, error) {
	server.WorkspaceRoot = filepath.Clean(server.WorkspaceRoot)
	return m.servers.Record(ctx, server)
}

func (m *manager) RemoveServer(ctx context.Context, id uuid.UUID) (entity.ManagedServer, error) {
	removed, err := m.servers.Delete(ctx, id)
	if err != nil {
		return entity.ManagedServer{}, err
	}
	m.Publish(entity.ServerCleanupCompleted{WorkspaceRoot: removed.WorkspaceRoot, ServerID: removed.ServerID})
	return removed, nil
}

func (m *manager) RemoveProject(ctx context.Context, root string) []entity.ManagedServer {
	removed := m.servers.DeleteWorkspaceRoot(ctx, filepath.Clean(root))
	for _, s := range removed {
		m.Publish(entity.ServerCleanupCompleted{WorkspaceRoot: s.WorkspaceRoot, ServerID: s.ServerID})
	}
	return removed
}

func (m *manager) ForgetProject(ctx context.Context, root string) {
	root = filepath.Clean(root)
	m.unwatch(root)

	m.projectsMu.Lock()
	_, known := m.projects[root]
	delete(m.projects, root)
	m.projectsMu.Unlock()

	if known {
		m.logger.Infow("project forgotten", "root", root)
	}
}

func (m *manager) SetBridge(bridge ServerBridge) {
	m.bridgeMu.Lock()
	defer m.bridgeMu.Unlock()

	m.bridge = bridge
	m.logger.Infow("language server bridge configured")
}

func (m *manager) HasBridge() bool {
	return m.getBridge() != nil
}

func (m *manager) Start(ctx context.Context) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	if m.started || m.stopped {
		return nil
	}
	m.started = true

	if m.getBridge() == nil {
		m.logger.Warnw("starting without a language server bridge, servers will not be started")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	if m.cfg.WatchMarkers {
		if err := m.startWatcher(runCtx); err != nil {
			m.logger.Warnw("marker watcher unavailable", "error", err)
		}
	}

	m.wg.Add(2)
	go m.processEvents(runCtx)
	go m.healthLoop(runCtx)
	return nil
}

func (m *manager) Stop(ctx context.Context) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	if m.stopped {
		return nil
	}
	m.stopped = true

	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.stopWatcher()

	// Subscribers still learn about every server that was being managed.
	for _, root := range m.servers.WorkspaceRoots(ctx) {
		for _, s := range m.servers.GetAllFromWorkspaceRoot(ctx, root) {
			m.logger.Infow("cleaning up managed server", "root", root, "server", s.ServerName, "serverID", s.ServerID)
			m.forward(entity.ServerCleanupCompleted{WorkspaceRoot: root, ServerID: s.ServerID})
		}
	}

	m.subMu.Lock()
	if m.subscriber != nil {
		close(m.subscriber)
		m.subscriber = nil
	}
	m.subMu.Unlock()
	return nil
}

func (m *manager) getBridge() ServerBridge {
	m.bridgeMu.RLock()
	defer m.bridgeMu.RUnlock()

	return m.bridge
}
