package control

import (
	"context"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Completion always replies with a result. Failures are carried in its Error field.
// An automatic request that the text around the cursor does not call for replies with no items.
func (r *jsonRPCRouter) Completion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCompletionRequest(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	if params.Trigger != entity.CompletionTriggerAutomatic {
		return reply(ctx, r.completion.RequestCompletions(ctx, *params), nil)
	}

	if params.Cursor != nil {
		if _, err := r.coordinator.SetCursor(ctx, params.ViewID, params.DocID, *params.Cursor); err != nil {
			return reply(ctx, nil, err)
		}
	}
	result, ok := r.completion.TriggerAutomatic(ctx, params.DocID, params.ViewID, params.TriggerCharacter)
	if !ok {
		return reply(ctx, entity.CompletionResult{Items: []entity.CompletionItem{}}, nil)
	}
	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) CancelCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCompletionRequest(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.completion.Cancel(ctx, params.DocID, params.ViewID)
	return reply(ctx, nil, err)
}
