package control

import (
	"context"

	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) OpenDocument(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToOpenDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.coordinator.OpenDocument(ctx, params.Document, params.ViewID)
	return reply(ctx, nil, err)
}

// ChangeDocument stores the new text and forwards it to the servers tracking the document.
// Removing text hides completions in the view that was edited.
func (r *jsonRPCRouter) ChangeDocument(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToChangeDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	change, err := r.coordinator.ChangeDocument(ctx, params.DocID, params.Text)
	if err != nil {
		return reply(ctx, nil, err)
	}

	if params.ViewID != 0 && change.TextRemoved {
		if err := r.completion.DeleteText(ctx, params.DocID, params.ViewID); err != nil {
			r.logger.Warnw("failed to hide completions", "docID", params.DocID, "error", err)
		}
	}
	return reply(ctx, change.Document.Version, nil)
}

func (r *jsonRPCRouter) CloseDocument(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.coordinator.CloseDocument(ctx, params.DocID)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) SetCursor(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetCursorParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	view, err := r.coordinator.SetCursor(ctx, params.ViewID, params.DocID, params.Cursor)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, view, nil)
}
