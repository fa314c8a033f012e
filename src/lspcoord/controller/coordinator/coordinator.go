// Package coordinator serializes the commands that start, stop and query language servers
// and the commands that change the editor model.
// Commands are queued from any goroutine and processed one at a time by a single consumer,
// which is the only writer of the editor model.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/bridge"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/environment"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/project"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	editorclient "github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/clock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/core"
	coorderrors "github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/repository/editor"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_gaugeQueuedCommands = "queued_commands"

	_outcomeSuccess = "success"
	_outcomeError   = "error"
	_outcomeTimeout = "timeout"
)

// Module provides the coordinator.
var Module = fx.Provide(New)

// Coordinator is the command channel of the coordination layer.
// Every call enqueues a command and waits for its reply, or for ctx.
type Coordinator interface {
	// StartServer starts a server for root and records it. Starting a server that already runs returns its handle.
	StartServer(ctx context.Context, root string, serverName string, languageID string) (entity.ServerStartResult, error)
	// DetectAndStartProject detects the project at root and starts each of its servers.
	// An unknown project is reported as a DetectionError, so that callers fall back to file based startup.
	DetectAndStartProject(ctx context.Context, root string) ([]entity.ServerStartResult, error)
	StopServer(ctx context.Context, id uuid.UUID) error
	// RestartServersForWorkspaceChange moves the editor to newRoot: the environment of newRoot is captured,
	// the servers of oldRoot are stopped and the servers of newRoot are started.
	RestartServersForWorkspaceChange(ctx context.Context, oldRoot string, newRoot string) (entity.WorkspaceChangeResult, error)
	GetProjectStatus(ctx context.Context, root string) (entity.ProjectStatus, error)
	EnsureDocumentTracked(ctx context.Context, id uuid.UUID, docID entity.DocumentID) error
	// RequestCompletion never fails: errors are reported in the result.
	RequestCompletion(ctx context.Context, request entity.CompletionRequest) entity.CompletionResult
	SyncDocument(ctx context.Context, docID entity.DocumentID) error
	// OpenDocument adds a document to the editor model. A non-zero viewID opens a view onto it.
	OpenDocument(ctx context.Context, doc entity.Document, viewID entity.ViewID) error
	// ChangeDocument replaces the text of a document and forwards it to the servers tracking it.
	ChangeDocument(ctx context.Context, docID entity.DocumentID, text string) (entity.DocumentChange, error)
	// CloseDocument notifies the servers tracking a document and removes it from the editor model.
	CloseDocument(ctx context.Context, docID entity.DocumentID) error
	SetCursor(ctx context.Context, viewID entity.ViewID, docID entity.DocumentID, cursor int) (entity.View, error)
	// CursorContext returns the text of a document and the cursor of the view onto it.
	CursorContext(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) (entity.CursorContext, error)
	// QueueLength returns the number of commands waiting to be processed.
	QueueLength() int
	Start(ctx context.Context) error
	// Stop replies to every queued command with CoordinatorStoppedError. Commands sent afterwards are rejected.
	Stop(ctx context.Context) error
}

// Params are inbound parameters to initialize a new coordinator.
type Params struct {
	fx.In

	Config        config.Provider
	Bridge        bridge.Bridge
	Manager       project.Manager
	Environment   environment.Provider
	Editor        editor.Repository
	EditorGateway editorclient.Gateway
	Clock         clock.Clock
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
	Lifecycle     fx.Lifecycle `optional:"true"`
}

type coordinator struct {
	cfg           entity.CoordinatorConfig
	bridge        bridge.Bridge
	manager       project.Manager
	environment   environment.Provider
	editor        editor.Repository
	editorGateway editorclient.Gateway
	clock         clock.Clock
	logger        *zap.SugaredLogger
	stats         tally.Scope

	queueMu sync.Mutex
	queue   []command
	signal  chan struct{}
	stopped bool

	lifecycleMu sync.Mutex
	started     bool
	cancel      context.CancelFunc
	loop        sync.WaitGroup
	// background tracks work that outlives the command that started it.
	background sync.WaitGroup
}

// New creates a new coordinator.
func New(p Params) (Coordinator, error) {
	cfg := entity.DefaultCoordinatorConfig()
	if err := core.PopulateIfPresent(p.Config, entity.CoordinatorConfigKey, &cfg); err != nil {
		return nil, fmt.Errorf("configure coordinator: %w", err)
	}
	if cfg.StartServerTimeout <= 0 || cfg.EnvironmentTimeout <= 0 || cfg.CompletionTimeout <= 0 {
		return nil, coorderrors.Configuration("coordinator timeouts must be positive")
	}

	c := &coordinator{
		cfg:           cfg,
		bridge:        p.Bridge,
		manager:       p.Manager,
		environment:   p.Environment,
		editor:        p.Editor,
		editorGateway: p.EditorGateway,
		clock:         p.Clock,
		logger:        p.Logger.Named("coordinator"),
		stats:         p.Stats,
		signal:        make(chan struct{}, 1),
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStart: c.Start,
			OnStop:  c.Stop,
		})
	}
	return c, nil
}

func (c *coordinator) StartServer(ctx context.Context, root string, serverName string, languageID string) (entity.ServerStartResult, error) {
	cmd := startServerCommand{reply: newReply[entity.ServerStartResult](), root: root, serverName: serverName, languageID: languageID}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) DetectAndStartProject(ctx context.Context, root string) ([]entity.ServerStartResult, error) {
	cmd := detectAndStartProjectCommand{reply: newReply[[]entity.ServerStartResult](), root: root}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) StopServer(ctx context.Context, id uuid.UUID) error {
	cmd := stopServerCommand{reply: newReply[struct{}](), serverID: id}
	_, err := await(ctx, c, cmd, cmd.reply)
	return err
}

func (c *coordinator) RestartServersForWorkspaceChange(ctx context.Context, oldRoot string, newRoot string) (entity.WorkspaceChangeResult, error) {
	cmd := restartServersCommand{reply: newReply[entity.WorkspaceChangeResult](), oldRoot: oldRoot, newRoot: newRoot}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) GetProjectStatus(ctx context.Context, root string) (entity.ProjectStatus, error) {
	cmd := projectStatusCommand{reply: newReply[entity.ProjectStatus](), root: root}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) EnsureDocumentTracked(ctx context.Context, id uuid.UUID, docID entity.DocumentID) error {
	cmd := ensureDocumentTrackedCommand{reply: newReply[struct{}](), serverID: id, docID: docID}
	_, err := await(ctx, c, cmd, cmd.reply)
	return err
}

func (c *coordinator) RequestCompletion(ctx context.Context, request entity.CompletionRequest) entity.CompletionResult {
	cmd := requestCompletionCommand{reply: newReply[entity.CompletionResult](), request: request}
	result, err := await(ctx, c, cmd, cmd.reply)
	if err != nil {
		return entity.CompletionFailure(err.Error())
	}
	return result
}

func (c *coordinator) SyncDocument(ctx context.Context, docID entity.DocumentID) error {
	cmd := syncDocumentCommand{reply: newReply[struct{}](), docID: docID}
	_, err := await(ctx, c, cmd, cmd.reply)
	return err
}

func (c *coordinator) OpenDocument(ctx context.Context, doc entity.Document, viewID entity.ViewID) error {
	cmd := openDocumentCommand{reply: newReply[struct{}](), doc: doc, viewID: viewID}
	_, err := await(ctx, c, cmd, cmd.reply)
	return err
}

func (c *coordinator) ChangeDocument(ctx context.Context, docID entity.DocumentID, text string) (entity.DocumentChange, error) {
	cmd := changeDocumentCommand{reply: newReply[entity.DocumentChange](), docID: docID, text: text}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) CloseDocument(ctx context.Context, docID entity.DocumentID) error {
	cmd := closeDocumentCommand{reply: newReply[struct{}](), docID: docID}
	_, err := await(ctx, c, cmd, cmd.reply)
	return err
}

func (c *coordinator) SetCursor(ctx context.Context, viewID entity.ViewID, docID entity.DocumentID, cursor int) (entity.View, error) {
	cmd := setCursorCommand{reply: newReply[entity.View](), viewID: viewID, docID: docID, cursor: cursor}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) CursorContext(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) (entity.CursorContext, error) {
	cmd := cursorContextCommand{reply: newReply[entity.CursorContext](), docID: docID, viewID: viewID}
	return await(ctx, c, cmd, cmd.reply)
}

func (c *coordinator) QueueLength() int {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	return len(c.queue)
}

func (c *coordinator) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.started {
		return nil
	}
	c.started = true

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loop.Add(1)
	go c.run(runCtx)
	c.logger.Infow("command processor started")
	return nil
}

func (c *coordinator) Stop(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.queueMu.Lock()
	if c.stopped {
		c.queueMu.Unlock()
		return nil
	}
	c.stopped = true
	c.queueMu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.loop.Wait()
	c.background.Wait()

	c.queueMu.Lock()
	pending := c.queue
	c.queue = nil
	c.updateQueueGauge()
	c.queueMu.Unlock()

	for _, cmd := range pending {
		cmd.fail(coorderrors.CoordinatorStoppedError)
	}
	c.logger.Infow("command processor stopped", "drained", len(pending))
	return nil
}

func (c *coordinator) enqueue(cmd command) {
	c.queueMu.Lock()
	if c.stopped {
		c.queueMu.Unlock()
		cmd.fail(coorderrors.CoordinatorStoppedError)
		return
	}
	c.queue = append(c.queue, cmd)
	c.updateQueueGauge()
	c.queueMu.Unlock()

	select {
	case c.signal <- struct{}{}:
	default:
	}
}

func (c *coordinator) dequeue() (command, bool) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	if len(c.queue) == 0 {
		return nil, false
	}
	cmd := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	c.updateQueueGauge()
	return cmd, true
}

// updateQueueGauge must be called with queueMu held.
func (c *coordinator) updateQueueGauge() {
	c.stats.Gauge(_gaugeQueuedCommands).Update(float64(len(c.queue)))
}

func (c *coordinator) run(ctx context.Context) {
	defer c.loop.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		cmd, ok := c.dequeue()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-c.signal:
			}
			continue
		}
		c.dispatch(ctx, cmd)
	}
}

// dispatch runs a command. A panicking handler is replied to with an internal error.
func (c *coordinator) dispatch(ctx context.Context, cmd command) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorw("command handler panicked", "command", cmd.name(), "panic", r)
			err := coorderrors.Internal("command %s panicked: %v", cmd.name(), r)
			cmd.fail(err)
			c.recordOutcome(cmd.name(), err)
		}
	}()

	err := cmd.execute(ctx, c)
	if errors.Is(err, errReplyPending) {
		return
	}
	c.recordOutcome(cmd.name(), err)
}

func (c *coordinator) recordOutcome(name string, err error) {
	outcome := _outcomeSuccess
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		outcome = _outcomeTimeout
	case err != nil:
		outcome = _outcomeError
	}
	c.stats.SubScope("commands").SubScope(name).Counter(outcome).Inc(1)
}

func await[T any](ctx context.Context, c *coordinator, cmd command, r *reply[T]) (T, error) {
	c.enqueue(cmd)
	select {
	case out := <-r.ch:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
