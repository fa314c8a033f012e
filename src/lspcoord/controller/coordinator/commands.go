package coordinator

import (
	"context"
	"errors"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
)

// errReplyPending is returned by commands whose reply is sent after they leave the loop.
var errReplyPending = errors.New("reply pending")

// command is a unit of work processed by the coordinator loop. Every command is replied to exactly once.
type command interface {
	// name identifies the command in logs and metrics.
	name() string
	execute(ctx context.Context, c *coordinator) error
	// fail replies with err, unless a reply was already sent.
	fail(err error)
}

type outcome[T any] struct {
	value T
	err   error
}

// reply is a single use reply channel. Only the first send is delivered.
type reply[T any] struct {
	ch   chan outcome[T]
	once sync.Once
}

func newReply[T any]() *reply[T] {
	return &reply[T]{ch: make(chan outcome[T], 1)}
}

func (r *reply[T]) send(value T, err error) {
	r.once.Do(func() {
		r.ch <- outcome[T]{value: value, err: err}
	})
}

func (r *reply[T]) fail(err error) {
	var zero T
	r.send(zero, err)
}

type startServerCommand struct {
	*reply[entity.ServerStartResult]
	root       string
	serverName string
	languageID string
}

func (startServerCommand) name() string { return "start_server" }

func (cmd startServerCommand) execute(ctx context.Context, c *coordinator) error {
	result, err := c.handleStartServer(ctx, cmd.root, cmd.serverName, cmd.languageID)
	cmd.send(result, err)
	return err
}

type detectAndStartProjectCommand struct {
	*reply[[]entity.ServerStartResult]
	root string
}

func (detectAndStartProjectCommand) name() string { return "detect_and_start_project" }

func (cmd detectAndStartProjectCommand) execute(ctx context.Context, c *coordinator) error {
	results, err := c.handleDetectAndStartProject(ctx, cmd.root)
	cmd.send(results, err)
	return err
}

type stopServerCommand struct {
	*reply[struct{}]
	serverID uuid.UUID
}

func (stopServerCommand) name() string { return "stop_server" }

func (cmd stopServerCommand) execute(ctx context.Context, c *coordinator) error {
	err := c.handleStopServer(ctx, cmd.serverID)
	cmd.send(struct{}{}, err)
	return err
}

type restartServersCommand struct {
	*reply[entity.WorkspaceChangeResult]
	oldRoot string
	newRoot string
}

func (restartServersCommand) name() string { return "restart_servers_for_workspace_change" }

func (cmd restartServersCommand) execute(ctx context.Context, c *coordinator) error {
	result, err := c.handleRestartServers(ctx, cmd.oldRoot, cmd.newRoot)
	cmd.send(result, err)
	return err
}

type projectStatusCommand struct {
	*reply[entity.ProjectStatus]
	root string
}

func (projectStatusCommand) name() string { return "get_project_status" }

func (cmd projectStatusCommand) execute(ctx context.Context, c *coordinator) error {
	status := c.handleProjectStatus(ctx, cmd.root)
	cmd.send(status, nil)
	return nil
}

type ensureDocumentTrackedCommand struct {
	*reply[struct{}]
	serverID uuid.UUID
	docID    entity.DocumentID
}

func (ensureDocumentTrackedCommand) name() string { return "ensure_document_tracked" }

func (cmd ensureDocumentTrackedCommand) execute(ctx context.Context, c *coordinator) error {
	err := c.handleEnsureDocumentTracked(ctx, cmd.serverID, cmd.docID)
	cmd.send(struct{}{}, err)
	return err
}

type requestCompletionCommand struct {
	*reply[entity.CompletionResult]
	request entity.CompletionRequest
}

func (requestCompletionCommand) name() string { return "request_completion" }

func (cmd requestCompletionCommand) execute(ctx context.Context, c *coordinator) error {
	return c.handleRequestCompletion(ctx, cmd.request, cmd.reply)
}

type syncDocumentCommand struct {
	*reply[struct{}]
	docID entity.DocumentID
}

func (syncDocumentCommand) name() string { return "sync_document" }

func (cmd syncDocumentCommand) execute(ctx context.Context, c *coordinator) error {
	err := c.bridge.SyncDocument(ctx, cmd.docID)
	cmd.send(struct{}{}, err)
	return err
}

type openDocumentCommand struct {
	*reply[struct{}]
	doc    entity.Document
	viewID entity.ViewID
}

func (openDocumentCommand) name() string { return "open_document" }

func (cmd openDocumentCommand) execute(ctx context.Context, c *coordinator) error {
	err := c.handleOpenDocument(ctx, cmd.doc, cmd.viewID)
	cmd.send(struct{}{}, err)
	return err
}

type changeDocumentCommand struct {
	*reply[entity.DocumentChange]
	docID entity.DocumentID
	text  string
}

func (changeDocumentCommand) name() string { return "change_document" }

func (cmd changeDocumentCommand) execute(ctx context.Context, c *coordinator) error {
	change, err := c.handleChangeDocument(ctx, cmd.docID, cmd.text)
	cmd.send(change, err)
	return err
}

type closeDocumentCommand struct {
	*reply[struct{}]
	docID entity.DocumentID
}

func (closeDocumentCommand) name() string { return "close_document" }

func (cmd closeDocumentCommand) execute(ctx context.Context, c *coordinator) error {
	err := c.handleCloseDocument(ctx, cmd.docID)
	cmd.send(struct{}{}, err)
	return err
}

type setCursorCommand struct {
	*reply[entity.View]
	viewID entity.ViewID
	docID  entity.DocumentID
	cursor int
}

func (setCursorCommand) name() string { return "set_cursor" }

func (cmd setCursorCommand) execute(ctx context.Context, c *coordinator) error {
	view, err := c.editor.SetCursor(ctx, cmd.viewID, cmd.docID, cmd.cursor)
	cmd.send(view, err)
	return err
}

type cursorContextCommand struct {
	*reply[entity.CursorContext]
	docID  entity.DocumentID
	viewID entity.ViewID
}

func (cursorContextCommand) name() string { return "cursor_context" }

func (cmd cursorContextCommand) execute(ctx context.Context, c *coordinator) error {
	cursor, err := c.handleCursorContext(ctx, cmd.docID, cmd.viewID)
	cmd.send(cursor, err)
	return err
}
