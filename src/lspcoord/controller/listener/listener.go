// Package listener consumes project events and turns startup requests into coordinator commands.
package listener

import (
	"context"
	"sync"
	"time"

	"github.com/nucleotide/lspcoord/src/lspcoord/controller/coordinator"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/project"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	editorclient "github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/clock"
	"github.com/uber-go/tally"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_initialBackoff = 100 * time.Millisecond
	_maxBackoff     = 5 * time.Second
	// _healthyPeriod is how long a subscription must last for the backoff to reset.
	_healthyPeriod = 30 * time.Second

	_counterRestarts = "restarts"
	_counterEvents   = "events"
)

// Module provides the event listener.
var Module = fx.Provide(New)

// Listener is a supervised consumer of project events. A closed subscription is replaced after a backoff.
type Listener interface {
	Start(ctx context.Context) error
	// Stop waits for the consumer and for the commands it issued.
	Stop(ctx context.Context) error
}

// Params are inbound parameters to initialize a new listener.
type Params struct {
	fx.In

	Manager       project.Manager
	Coordinator   coordinator.Coordinator
	EditorGateway editorclient.Gateway
	Clock         clock.Clock
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
	Lifecycle     fx.Lifecycle `optional:"true"`
}

type listener struct {
	manager       project.Manager
	coordinator   coordinator.Coordinator
	editorGateway editorclient.Gateway
	clock         clock.Clock
	logger        *zap.SugaredLogger
	stats         tally.Scope

	mu       sync.Mutex
	cancel   context.CancelFunc
	loop     sync.WaitGroup
	commands sync.WaitGroup
}

// New creates a new listener.
func New(p Params) Listener {
	l := &listener{
		manager:       p.Manager,
		coordinator:   p.Coordinator,
		editorGateway: p.EditorGateway,
		clock:         p.Clock,
		logger:        p.Logger.Named("listener"),
		stats:         p.Stats.SubScope("listener"),
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStart: l.Start,
			OnStop:  l.Stop,
		})
	}
	return l
}

func (l *listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		return nil
	}
	runCtx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.loop.Add(1)
	go l.run(runCtx)
	return nil
}

func (l *listener) Stop(ctx context.Context) error {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	l.loop.Wait()
	l.commands.Wait()
	return nil
}

func (l *listener) run(ctx context.Context) {
	defer l.loop.Done()

	backoff := _initialBackoff
	for {
		events := l.manager.Subscribe()
		subscribedAt := l.clock.Now()
		l.logger.Infow("subscribed to project events")

		l.consume(ctx, events)
		if ctx.Err() != nil {
			return
		}

		if l.clock.Now().Sub(subscribedAt) >= _healthyPeriod {
			backoff = _initialBackoff
		}
		l.stats.Counter(_counterRestarts).Inc(1)
		l.logger.Warnw("project event subscription closed, resubscribing", "backoff", backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		backoff *= 2
		if backoff > _maxBackoff {
			backoff = _maxBackoff
		}
	}
}

// consume handles events until the channel closes or ctx is done.
func (l *listener) consume(ctx context.Context, events <-chan entity.ProjectEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			l.stats.SubScope(_counterEvents).Counter(event.EventName()).Inc(1)
			l.handle(ctx, event)
		}
	}
}

func (l *listener) handle(ctx context.Context, event entity.ProjectEvent) {
	switch e := event.(type) {
	case entity.ServerStartupRequested:
		l.commands.Add(1)
		go func() {
			defer l.commands.Done()
			l.startServer(ctx, e)
		}()
	case entity.ProjectCleanupRequested:
		l.commands.Add(1)
		go func() {
			defer l.commands.Done()
			l.cleanupProject(ctx, e.WorkspaceRoot)
		}()
	case entity.ProjectDetected:
		l.logger.Infow("project detected", "root", e.WorkspaceRoot, "projectType", e.ProjectType.String(), "servers", e.Servers)
	case entity.ServerStartupCompleted:
		l.logger.Infow("server startup completed", "root", e.WorkspaceRoot, "server", e.ServerName, "status", e.Status)
		l.notifyStatus(ctx, entity.ServerStatusParams{
			WorkspaceRoot: e.WorkspaceRoot,
			ServerID:      e.ServerID,
			ServerName:    e.ServerName,
			Status:        string(e.Status),
			Error:         e.Error,
		})
	case entity.HealthCheckCompleted:
		if e.Status == entity.HealthHealthy {
			l.logger.Debugw("server healthy", "root", e.WorkspaceRoot, "serverID", e.ServerID)
			return
		}
		l.logger.Warnw("server unhealthy", "root", e.WorkspaceRoot, "serverID", e.ServerID, "status", e.Status)
		l.notifyStatus(ctx, entity.ServerStatusParams{
			WorkspaceRoot: e.WorkspaceRoot,
			ServerID:      e.ServerID,
			Status:        string(e.Status),
		})
	case entity.ServerCleanupCompleted:
		l.logger.Infow("server cleaned up", "root", e.WorkspaceRoot, "serverID", e.ServerID)
	default:
		l.logger.Warnw("ignoring unknown project event", "event", event.EventName())
	}
}

func (l *listener) startServer(ctx context.Context, e entity.ServerStartupRequested) {
	result, err := l.coordinator.StartServer(ctx, e.WorkspaceRoot, e.ServerName, e.LanguageID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.logger.Errorw("requested server startup failed", "root", e.WorkspaceRoot, "server", e.ServerName, "error", err)
		if showErr := l.editorGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
			Type:    protocol.MessageTypeError,
			Message: err.Error(),
		}); showErr != nil {
			l.logger.Warnw("failed to notify editors", "error", showErr)
		}
		return
	}
	l.logger.Infow("requested server started", "root", e.WorkspaceRoot, "server", result.ServerName, "serverID", result.ServerID)
}

// cleanupProject stops the servers of root and stops watching it.
func (l *listener) cleanupProject(ctx context.Context, root string) {
	defer l.manager.ForgetProject(ctx, root)

	status, err := l.coordinator.GetProjectStatus(ctx, root)
	if err != nil {
		l.logger.Warnw("failed to read project status", "root", root, "error", err)
		return
	}
	for _, s := range status.Servers {
		if err := l.coordinator.StopServer(ctx, s.ServerID); err != nil {
			l.logger.Warnw("failed to stop server", "root", root, "server", s.ServerName, "serverID", s.ServerID, "error", err)
		}
	}
}

func (l *listener) notifyStatus(ctx context.Context, params entity.ServerStatusParams) {
	if err := l.editorGateway.Notify(ctx, entity.NotificationServerStatus, params); err != nil {
		l.logger.Warnw("failed to send server status", "serverID", params.ServerID, "error", err)
	}
}
