package coordinator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	completiontext "github.com/nucleotide/lspcoord/src/lspcoord/internal/completion-text"
	coorderrors "github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
)

const _detectionFallbackMessage = "project detection failed - falling back to file-based LSP"

func (c *coordinator) handleStartServer(ctx context.Context, root string, serverName string, languageID string) (entity.ServerStartResult, error) {
	root = filepath.Clean(root)
	timeoutCtx, cancel := context.WithTimeout(ctx, c.cfg.StartServerTimeout)
	defer cancel()

	type started struct {
		id  uuid.UUID
		err error
	}
	var (
		mu     sync.Mutex
		gaveUp bool
	)
	done := make(chan started, 1)

	c.background.Add(1)
	go func() {
		defer c.background.Done()
		id, err := c.bridge.StartServer(timeoutCtx, root, serverName, languageID)

		mu.Lock()
		if !gaveUp {
			done <- started{id: id, err: err}
			mu.Unlock()
			return
		}
		mu.Unlock()

		// The reply already reported a timeout, so a late success must not leave a server behind.
		if err == nil {
			c.logger.Warnw("stopping server that started after its timeout", "server", serverName, "root", root, "serverID", id)
			if stopErr := c.bridge.StopServer(context.Background(), id); stopErr != nil {
				c.logger.Errorw("failed to stop late server", "serverID", id, "error", stopErr)
			}
		}
	}()

	var result started
	select {
	case result = <-done:
	case <-timeoutCtx.Done():
		mu.Lock()
		select {
		case result = <-done:
		default:
			gaveUp = true
			result = started{err: timeoutCtx.Err()}
		}
		mu.Unlock()
	}

	if result.err != nil {
		return entity.ServerStartResult{}, c.startFailure(serverName, result.err)
	}

	server, added, err := c.manager.RecordServer(ctx, entity.ManagedServer{
		ServerID:      result.id,
		ServerName:    serverName,
		WorkspaceRoot: root,
		LanguageID:    languageID,
		StartedAt:     c.clock.Now(),
	})
	if err != nil {
		return entity.ServerStartResult{}, c.startFailure(serverName, err)
	}
	if added {
		c.logger.Infow("server started", "server", serverName, "root", root, "serverID", server.ServerID, "languageID", languageID)
	} else {
		c.logger.Infow("server already running", "server", serverName, "root", root, "serverID", server.ServerID)
		if server.ServerID != result.id {
			// Only the recorded server is managed, the duplicate process is discarded.
			if err := c.bridge.StopServer(ctx, result.id); err != nil {
				c.logger.Warnw("failed to stop duplicate server", "server", serverName, "serverID", result.id, "error", err)
			}
		}
	}

	return entity.ServerStartResult{
		ServerID:   server.ServerID,
		ServerName: server.ServerName,
		LanguageID: server.LanguageID,
	}, nil
}

// startFailure turns a bridge error into the message shown to users.
func (c *coordinator) startFailure(serverName string, err error) error {
	var startup *coorderrors.ServerStartupError
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &startup) && startup.Timeout > 0) {
		seconds := int(c.cfg.StartServerTimeout / time.Second)
		c.logger.Warnw("server startup timed out", "server", serverName, "timeout", c.cfg.StartServerTimeout)
		return &coorderrors.CommandError{
			Kind: coorderrors.KindServerStartup,
			Message: fmt.Sprintf("Timeout starting %s server after %d seconds - check that %s is installed and in PATH",
				serverName, seconds, serverName),
			Err: &coorderrors.ServerStartupError{ServerName: serverName, Timeout: c.cfg.StartServerTimeout, Err: context.DeadlineExceeded},
		}
	}

	c.logger.Errorw("server startup failed", "server", serverName, "error", err)
	kind, ok := coorderrors.KindOf(err)
	if !ok {
		kind = coorderrors.KindServerStartup
	}
	return &coorderrors.CommandError{
		Kind:    kind,
		Message: fmt.Sprintf("Failed to start %s server: %v", serverName, err),
		Err:     err,
	}
}

func (c *coordinator) handleDetectAndStartProject(ctx context.Context, root string) ([]entity.ServerStartResult, error) {
	info, err := c.manager.DetectProject(ctx, root)
	if err != nil {
		var detection *coorderrors.DetectionError
		if errors.As(err, &detection) {
			c.logger.Infow("falling back to file based startup", "root", root, "reason", detection.Reason)
			if showErr := c.editorGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
				Type:    protocol.MessageTypeWarning,
				Message: _detectionFallbackMessage,
			}); showErr != nil {
				c.logger.Warnw("failed to notify editors", "error", showErr)
			}
		}
		return nil, err
	}

	languageID := info.ProjectType.PrimaryLanguageID()
	results := make([]entity.ServerStartResult, 0, len(info.LanguageServers))
	var errs error
	for _, name := range info.LanguageServers {
		result, err := c.handleStartServer(ctx, info.WorkspaceRoot, name, languageID)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 && errs != nil {
		return nil, errs
	}
	if errs != nil {
		c.logger.Warnw("some servers failed to start", "root", info.WorkspaceRoot, "projectType", info.ProjectType.String(), "error", errs)
	}
	return results, nil
}

func (c *coordinator) handleStopServer(ctx context.Context, id uuid.UUID) error {
	if err := c.bridge.StopServer(ctx, id); err != nil {
		c.logger.Warnw("failed to stop server", "serverID", id, "error", err)
		return err
	}
	return nil
}

func (c *coordinator) handleRestartServers(ctx context.Context, oldRoot string, newRoot string) (entity.WorkspaceChangeResult, error) {
	newRoot = filepath.Clean(newRoot)
	if oldRoot != "" {
		oldRoot = filepath.Clean(oldRoot)
	}

	envCtx, cancel := context.WithTimeout(ctx, c.cfg.EnvironmentTimeout)
	snapshot, err := c.environment.Capture(envCtx, newRoot)
	cancel()
	if err != nil {
		c.logger.Warnw("environment capture failed, using process environment", "root", newRoot, "error", err)
		snapshot = c.environment.ProcessEnvironment()
	}

	// The capture warms the cache; the bridge applies the overlay of the cached environment to each spawn.
	c.editor.SetWorkingDirectory(ctx, newRoot)
	c.logger.Infow("workspace environment ready", "root", newRoot, "origin", snapshot.Origin)

	result := entity.WorkspaceChangeResult{
		NewRoot:     newRoot,
		Environment: snapshot.Origin,
		Stopped:     []uuid.UUID{},
		Started:     []entity.ServerStartResult{},
	}

	if oldRoot != "" {
		for _, server := range c.manager.ManagedServers(ctx, oldRoot) {
			if err := c.bridge.StopServer(ctx, server.ServerID); err != nil {
				c.logger.Warnw("failed to stop server for previous workspace", "server", server.ServerName, "serverID", server.ServerID, "error", err)
				continue
			}
			result.Stopped = append(result.Stopped, server.ServerID)
		}
		if oldRoot != newRoot {
			c.environment.ClearDirectoryCache(oldRoot)
			c.manager.ForgetProject(ctx, oldRoot)
		}
	}

	started, err := c.handleDetectAndStartProject(ctx, newRoot)
	if err != nil && !coorderrors.IsRecoverable(err) {
		c.logger.Warnw("failed to start servers for workspace", "root", newRoot, "error", err)
	}
	result.Started = append(result.Started, started...)

	c.logger.Infow("workspace changed", "oldRoot", oldRoot, "newRoot", newRoot, "stopped", len(result.Stopped), "started", len(result.Started))
	return result, nil
}

func (c *coordinator) handleProjectStatus(ctx context.Context, root string) entity.ProjectStatus {
	root = filepath.Clean(root)
	status := entity.ProjectStatus{
		WorkspaceRoot: root,
		Servers:       []entity.ManagedServer{},
	}
	if info, ok := c.manager.ProjectInfo(ctx, root); ok {
		status.Info = &info
	}
	status.Servers = append(status.Servers, c.manager.ManagedServers(ctx, root)...)
	return status
}

func (c *coordinator) handleEnsureDocumentTracked(ctx context.Context, id uuid.UUID, docID entity.DocumentID) error {
	if err := c.bridge.EnsureDocumentTracked(ctx, id, docID); err != nil {
		c.logger.Warnw("document tracking failed", "serverID", id, "docID", docID, "error", err)
		return err
	}
	return nil
}

// handleRequestCompletion resolves the request on the loop and performs the server round trip off it.
func (c *coordinator) handleRequestCompletion(ctx context.Context, request entity.CompletionRequest, r *reply[entity.CompletionResult]) error {
	doc, err := c.editor.Document(ctx, request.DocID)
	if err != nil {
		r.send(entity.CompletionFailure(err.Error()), nil)
		return err
	}

	cursor := 0
	if request.Cursor != nil {
		cursor = *request.Cursor
	} else {
		view, err := c.editor.View(ctx, request.ViewID)
		if err != nil {
			r.send(entity.CompletionFailure(err.Error()), nil)
			return err
		}
		cursor = view.Cursor
	}
	if n := utf8.RuneCountInString(doc.Text); cursor > n {
		cursor = n
	} else if cursor < 0 {
		cursor = 0
	}

	servers, err := c.bridge.CompletionServers(ctx, request.DocID)
	if err != nil {
		r.send(entity.CompletionFailure(err.Error()), nil)
		return err
	}
	if len(servers) == 0 {
		err := &coorderrors.CompletionError{Reason: fmt.Sprintf("no language server provides completions for %s", docName(doc))}
		r.send(entity.CompletionFailure(err.Error()), nil)
		return err
	}

	server := servers[0]
	prefix, _ := completiontext.ExtractPrefix(doc.Text, cursor)
	params := mapper.DocumentToCompletionParams(doc, cursor, request.Trigger, request.TriggerCharacter)

	// The server must hold the text the params were built from before the round trip starts.
	syncCtx, cancelSync := context.WithTimeout(ctx, c.cfg.CompletionTimeout)
	if err := c.bridge.EnsureDocumentTracked(syncCtx, server.ServerID, request.DocID); err != nil {
		c.logger.Warnw("document tracking failed before completion", "serverID", server.ServerID, "docID", request.DocID, "error", err)
	}
	if err := c.bridge.SyncDocument(syncCtx, request.DocID); err != nil {
		c.logger.Warnw("document sync failed before completion", "docID", request.DocID, "error", err)
	}
	cancelSync()

	c.background.Add(1)
	go func() {
		defer c.background.Done()

		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.CompletionTimeout)
		defer cancel()

		result, err := c.completeWith(reqCtx, server.ServerID, params, prefix)
		if err != nil {
			c.logger.Warnw("completion request failed", "server", server.ServerName, "docID", request.DocID, "error", err)
			result = entity.CompletionFailure(err.Error())
		}
		r.send(result, nil)
		c.recordOutcome(requestCompletionCommand{}.name(), err)
	}()
	return errReplyPending
}

func (c *coordinator) completeWith(ctx context.Context, id uuid.UUID, params *protocol.CompletionParams, prefix string) (entity.CompletionResult, error) {
	list, err := c.bridge.Completion(ctx, id, params)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return entity.CompletionResult{}, fmt.Errorf("completion timed out after %s: %w", c.cfg.CompletionTimeout, context.DeadlineExceeded)
		}
		return entity.CompletionResult{}, err
	}
	return mapper.CompletionListToResult(list, prefix), nil
}

func (c *coordinator) handleOpenDocument(ctx context.Context, doc entity.Document, viewID entity.ViewID) error {
	if err := c.editor.OpenDocument(ctx, doc); err != nil {
		return err
	}
	if viewID != 0 {
		if _, err := c.editor.SetCursor(ctx, viewID, doc.ID, 0); err != nil {
			return err
		}
	}
	return nil
}

// handleChangeDocument stores the text and forwards it to the servers tracking the document.
func (c *coordinator) handleChangeDocument(ctx context.Context, docID entity.DocumentID, text string) (entity.DocumentChange, error) {
	before, err := c.editor.Document(ctx, docID)
	if err != nil {
		return entity.DocumentChange{}, err
	}
	removed := utf8.RuneCountInString(text) < utf8.RuneCountInString(before.Text)

	after, err := c.editor.UpdateText(ctx, docID, text)
	if err != nil {
		return entity.DocumentChange{}, err
	}
	if err := c.bridge.SyncDocument(ctx, docID); err != nil {
		c.logger.Warnw("failed to sync document", "docID", docID, "error", err)
	}
	return entity.DocumentChange{Document: *after, TextRemoved: removed}, nil
}

func (c *coordinator) handleCloseDocument(ctx context.Context, docID entity.DocumentID) error {
	// Servers read the document path from the editor model, so they are notified first.
	if err := c.bridge.CloseDocument(ctx, docID); err != nil {
		c.logger.Warnw("failed to close document on servers", "docID", docID, "error", err)
	}
	_, err := c.editor.CloseDocument(ctx, docID)
	return err
}

func (c *coordinator) handleCursorContext(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) (entity.CursorContext, error) {
	doc, err := c.editor.Document(ctx, docID)
	if err != nil {
		return entity.CursorContext{}, err
	}
	view, err := c.editor.View(ctx, viewID)
	if err != nil {
		return entity.CursorContext{}, err
	}
	result := entity.CursorContext{Document: *doc, Cursor: view.Cursor}

	servers, err := c.bridge.CompletionServers(ctx, docID)
	if err != nil {
		c.logger.Debugw("no completion servers", "docID", docID, "error", err)
		return result, nil
	}
	if len(servers) > 0 {
		result.Completable = true
		result.TriggerCharacters = servers[0].TriggerCharacters
	}
	return result, nil
}

func docName(doc *entity.Document) string {
	if doc.Path == "" {
		return fmt.Sprintf("document %d", doc.ID)
	}
	return filepath.Base(doc.Path)
}
