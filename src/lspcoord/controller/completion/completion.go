// Package completion drives completion requests from editor activity and publishes the resulting UI state.
package completion

import (
	"context"

	"github.com/nucleotide/lspcoord/src/lspcoord/controller/coordinator"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	editorclient "github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client"
	completiontext "github.com/nucleotide/lspcoord/src/lspcoord/internal/completion-text"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_counterRequests   = "requests"
	_counterErrors     = "errors"
	_counterSuperseded = "superseded"

	_supersededReason = "completion request superseded"
)

// Module provides the completion controller.
var Module = fx.Provide(New)

// Controller turns editor activity into completion requests. Every request publishes a show or hide event
// to connected editors, and at most one request per document is in flight.
type Controller interface {
	// TriggerManual requests completions at the cursor of the view.
	TriggerManual(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) entity.CompletionResult
	// TriggerAutomatic requests completions after typing, when the text around the cursor calls for them.
	// typed is the text just inserted. The boolean reports whether a request was made.
	TriggerAutomatic(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID, typed string) (entity.CompletionResult, bool)
	// TriggerCharacter requests completions after a server trigger character was typed.
	TriggerCharacter(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID, ch string) entity.CompletionResult
	RequestCompletions(ctx context.Context, request entity.CompletionRequest) entity.CompletionResult
	// DeleteText hides completions after text was removed.
	DeleteText(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) error
	// Cancel abandons the request in flight for the document and hides completions.
	Cancel(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) error
}

// Params are inbound parameters to initialize a new completion controller.
type Params struct {
	fx.In

	Coordinator   coordinator.Coordinator
	EditorGateway editorclient.Gateway
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
	Lifecycle     fx.Lifecycle `optional:"true"`
}

type controller struct {
	coordinator   coordinator.Coordinator
	editorGateway editorclient.Gateway
	logger        *zap.SugaredLogger
	stats         tally.Scope
	pending       pendingRequestStore
}

// New creates a new completion controller.
func New(p Params) Controller {
	c := &controller{
		coordinator:   p.Coordinator,
		editorGateway: p.EditorGateway,
		logger:        p.Logger.Named("completion"),
		stats:         p.Stats.SubScope("completion"),
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				c.pending.cancelAll()
				return nil
			},
		})
	}
	return c
}

func (c *controller) TriggerManual(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) entity.CompletionResult {
	return c.RequestCompletions(ctx, entity.CompletionRequest{
		DocID:   docID,
		ViewID:  viewID,
		Trigger: entity.CompletionTriggerManual,
	})
}

func (c *controller) TriggerAutomatic(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID, typed string) (entity.CompletionResult, bool) {
	cursor, err := c.coordinator.CursorContext(ctx, docID, viewID)
	if err != nil {
		c.logger.Debugw("skipping automatic completion", "docID", docID, "viewID", viewID, "error", err)
		return entity.CompletionResult{}, false
	}
	if !cursor.Completable {
		return entity.CompletionResult{}, false
	}

	if !completiontext.ShouldTriggerAutoCompletion(cursor.Document.Text, cursor.Cursor, typed, cursor.TriggerCharacters) {
		return entity.CompletionResult{}, false
	}

	request := entity.CompletionRequest{
		DocID:   docID,
		ViewID:  viewID,
		Trigger: entity.CompletionTriggerAutomatic,
	}
	if typed != "" {
		runes := []rune(typed)
		request.Trigger = entity.CompletionTriggerCharacter
		request.TriggerCharacter = string(runes[len(runes)-1])
	}
	return c.RequestCompletions(ctx, request), true
}

func (c *controller) TriggerCharacter(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID, ch string) entity.CompletionResult {
	return c.RequestCompletions(ctx, entity.CompletionRequest{
		DocID:            docID,
		ViewID:           viewID,
		Trigger:          entity.CompletionTriggerCharacter,
		TriggerCharacter: ch,
	})
}

func (c *controller) RequestCompletions(ctx context.Context, request entity.CompletionRequest) entity.CompletionResult {
	c.stats.Counter(_counterRequests).Inc(1)

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	token := c.pending.setPendingRequest(request.DocID, cancel)
	defer c.pending.deletePendingRequest(request.DocID, token)

	result := c.coordinator.RequestCompletion(reqCtx, request)
	if !c.pending.isCurrent(request.DocID, token) {
		// A newer request or a cancellation owns the UI state now.
		c.stats.Counter(_counterSuperseded).Inc(1)
		c.logger.Debugw("discarding superseded completion", "docID", request.DocID)
		return entity.CompletionFailure(_supersededReason)
	}

	if result.Error != "" {
		c.stats.Counter(_counterErrors).Inc(1)
		c.logger.Infow("completion failed", "docID", request.DocID, "trigger", request.Trigger, "error", result.Error)
		c.publish(ctx, entity.CompletionEvent{Kind: entity.CompletionEventHide, DocID: request.DocID, ViewID: request.ViewID})
		return result
	}

	if len(result.Items) == 0 {
		c.publish(ctx, entity.CompletionEvent{Kind: entity.CompletionEventHide, DocID: request.DocID, ViewID: request.ViewID})
		return result
	}
	c.publish(ctx, entity.CompletionEvent{
		Kind:   entity.CompletionEventShow,
		DocID:  request.DocID,
		ViewID: request.ViewID,
		Result: &result,
	})
	return result
}

func (c *controller) DeleteText(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) error {
	c.pending.cancelPendingRequest(docID)
	return c.editorGateway.PublishCompletion(ctx, entity.CompletionEvent{Kind: entity.CompletionEventHide, DocID: docID, ViewID: viewID})
}

func (c *controller) Cancel(ctx context.Context, docID entity.DocumentID, viewID entity.ViewID) error {
	if c.pending.cancelPendingRequest(docID) {
		c.logger.Debugw("completion cancelled", "docID", docID)
	}
	return c.editorGateway.PublishCompletion(ctx, entity.CompletionEvent{Kind: entity.CompletionEventHide, DocID: docID, ViewID: viewID})
}

func (c *controller) publish(ctx context.Context, event entity.CompletionEvent) {
	if err := c.editorGateway.PublishCompletion(ctx, event); err != nil {
		c.logger.Warnw("failed to publish completion state", "kind", event.Kind, "docID", event.DocID, "error", err)
	}
}
